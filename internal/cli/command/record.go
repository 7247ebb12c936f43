package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/sealslot-go/internal/cli/connection"
	"github.com/yndnr/sealslot-go/pkg/crypto/adaptive"
	"github.com/yndnr/sealslot-go/pkg/integrity"
)

// maxStdinBytes bounds a value read from stdin.
const maxStdinBytes = 1 << 20

func passphraseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "passphrase",
		Aliases: []string{"p"},
		Usage:   "Encrypt or decrypt the payload with this passphrase",
		EnvVars: []string{"SEALSLOT_PASSPHRASE"},
	}
}

// ReadCommand returns the read command.
func ReadCommand() *cli.Command {
	return &cli.Command{
		Name:   "read",
		Usage:  "Read the current record",
		Flags:  []cli.Flag{passphraseFlag()},
		Action: readRecord,
	}
}

// RecoverCommand returns the recover command.
func RecoverCommand() *cli.Command {
	return &cli.Command{
		Name:   "recover",
		Usage:  "Read the most recent history entry",
		Flags:  []cli.Flag{passphraseFlag()},
		Action: recoverRecord,
	}
}

// WriteCommand returns the write command.
func WriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Seal a value with the client secret and store it",
		ArgsUsage: "VALUE (use - to read from stdin)",
		Flags:     []cli.Flag{passphraseFlag()},
		Action:    writeRecord,
	}
}

// RecordView is a record as shown to the user. Verified is the local
// check against the configured secret and is nil without one.
type RecordView struct {
	Data      string `json:"data" yaml:"data"`
	Plaintext string `json:"plaintext,omitempty" yaml:"plaintext,omitempty"`
	Checksum  string `json:"checksum" yaml:"checksum"`
	HMAC      string `json:"hmac" yaml:"hmac"`
	IsValid   bool   `json:"isValid" yaml:"isValid"`
	Verified  *bool  `json:"verified,omitempty" yaml:"verified,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func readRecord(c *cli.Context) error {
	return fetchRecord(c, (*connection.HTTPClient).Read)
}

func recoverRecord(c *cli.Context) error {
	return fetchRecord(c, (*connection.HTTPClient).Recover)
}

type fetchFunc func(*connection.HTTPClient, context.Context) (*connection.Record, error)

func fetchRecord(c *cli.Context, fetch fetchFunc) error {
	client, s, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	if err := requireToken(s); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rec, err := fetch(client, ctx)
	if err != nil {
		return err
	}

	view, err := newRecordView(rec, s.Secret, c.String("passphrase"))
	if err != nil {
		return err
	}
	if view.Verified != nil && !*view.Verified {
		PrintWarning(c, "record does not verify against the configured secret")
	}
	return render(c, s, view)
}

func newRecordView(rec *connection.Record, secret, passphrase string) (*RecordView, error) {
	view := &RecordView{
		Data:      rec.Data,
		Checksum:  rec.Checksum,
		HMAC:      rec.HMAC,
		IsValid:   rec.IsValid,
		Timestamp: rec.Timestamp,
	}

	if secret != "" {
		ok := integrity.Verify(rec.Data, rec.Checksum, rec.HMAC, secret)
		view.Verified = &ok
	}

	if passphrase != "" {
		plain, err := adaptive.OpenString(rec.Data, passphrase)
		if err != nil {
			return nil, fmt.Errorf("decrypt payload: %w", err)
		}
		view.Plaintext = plain
	}

	return view, nil
}

func writeRecord(c *cli.Context) error {
	value, err := valueArg(c)
	if err != nil {
		return err
	}

	client, s, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	if err := requireToken(s); err != nil {
		return err
	}
	if s.Secret == "" {
		return cli.Exit("no client secret: writes must be sealed, set --secret", 2)
	}

	payload := value
	if pass := c.String("passphrase"); pass != "" {
		payload, err = adaptive.SealString(value, pass)
		if err != nil {
			return fmt.Errorf("encrypt payload: %w", err)
		}
	}

	sealed := integrity.Seal(payload, s.Secret)

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := client.Write(ctx, connection.WriteRequest{
		Data:     sealed.Payload,
		Checksum: sealed.Checksum,
		HMAC:     sealed.Tag,
	})
	if err != nil {
		return err
	}
	return render(c, s, res)
}

func valueArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("write requires exactly one VALUE argument", 2)
	}
	value := c.Args().First()
	if value != "-" {
		return value, nil
	}

	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(io.LimitReader(in, maxStdinBytes+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) > maxStdinBytes {
		return "", errors.New("value from stdin is too large")
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
