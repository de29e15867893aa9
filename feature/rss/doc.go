// Package rss turns RSS and Atom feed items into playlist entries.
package rss
