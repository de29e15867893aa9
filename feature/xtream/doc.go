// Package xtream implements reconcile.CatalogAdapter for Xtream Codes
// compatible panels.
//
// Credentials travel as query parameters of player_api.php. When an account
// carries both a playlist path and a server URL, both are tried as base URLs.
package xtream
