// Package connection provides the HTTP client sealslot-cli uses to talk to
// a SealSlot server.
//
// HTTPClient sends the client token in X-Client-Token, unwraps the
// standard response envelope and turns error envelopes into *APIError.
package connection
