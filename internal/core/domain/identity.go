package domain

// ClientIdentity is a registered client.
//
// Token is a UUIDv4 string sent by the client on every request. Secret is
// the hex encoding of 32 random bytes and is the HMAC key for every
// record the client writes. Both are returned once, at registration, and
// never change.
type ClientIdentity struct {
	Token     string `json:"token"`
	Secret    string `json:"secret"`
	CreatedAt int64  `json:"created_at"` // Unix milliseconds
}
