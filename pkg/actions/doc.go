// Package actions wires the resource client's CRUD verbs into
// request/success/failure action triplets for unidirectional-data-flow
// stores. The Creators factory produces one deferred operation per verb: run
// with a dispatch callback, it announces the request, performs the network
// call through the resource layer, and delivers exactly one terminal action.
// Precondition failures (nil records, unregistered model names) are returned
// synchronously by the creator, before anything is dispatched.
package actions
