// Package stalker implements reconcile.PortalAdapter for Stalker/Ministra
// middleware portals.
//
// Requests impersonate a MAG250 set-top box: the MAC travels in a cookie and
// the session token obtained by Handshake is sent as a bearer token.
package stalker
