// Package ui implements the interactive terminal client for the library
// catalog. It is a bubbletea program with four screens: the catalog browser,
// the item form, category administration, and sign-in. Remote calls run as
// commands that report back through typed messages; snapshot fetches carry a
// sequence number so results belonging to an abandoned screen are dropped.
package ui
