// Package statekit_sdk bootstraps a ready-to-use resource App from the
// environment, selecting between the HTTP backend and the seedable in-memory
// mock. It is the entry point for applications that do not want to assemble
// the client by hand.
package statekit_sdk
