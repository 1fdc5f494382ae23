// Package openrits holds module-wide metadata.
package openrits

// Version is the openrits release version.
const Version = "0.1.0"
