// Package main hosts the prm CLI entrypoint and command graph.
//
// Commands translate flags into config overrides, ask internal/maintenance
// or internal/thumbnails for a script or a scan, and then either run the
// script through a shellcmd.Runner or print the result. Add behaviour to the
// internal packages first and keep the commands here declarative.
package main
