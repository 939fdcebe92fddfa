package mailstore

import "fmt"

// xoauth2Client implements the SASL XOAUTH2 exchange: a single initial
// response of "user=<user>\x01auth=Bearer <token>\x01\x01".
type xoauth2Client struct {
	username    string
	accessToken string
}

func newXOAUTH2Client(username, accessToken string) *xoauth2Client {
	return &xoauth2Client{username: username, accessToken: accessToken}
}

func (c *xoauth2Client) Start() (string, []byte, error) {
	ir := fmt.Sprint("user=", c.username, "\001auth=Bearer ", c.accessToken, "\001\001")
	return "XOAUTH2", []byte(ir), nil
}

func (c *xoauth2Client) Next(challenge []byte) ([]byte, error) {
	// Servers only continue the exchange to deliver an error blob.
	return nil, fmt.Errorf("authentication failed: %s", challenge)
}
