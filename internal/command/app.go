// Package command implements the fshp command line tool.
package command

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/hasbyte1/go-fshp/fshp"
	"github.com/hasbyte1/go-fshp/hashing"
)

// Exit codes returned by [App.Run].
const (
	ExitOK       = 0
	ExitMismatch = 1
	ExitError    = 2
)

var errMismatch = errors.New("password does not match")

// App is the fshp command.
type App struct {
	cfg     Config
	cli     *cli.App
	log     zerolog.Logger
	manager *hashing.Manager
}

// New builds the command.  The password is read from stdin unless
// --password is given.
func New(cfg Config, stdin io.Reader, stdout, stderr io.Writer) (*App, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	m, err := hashing.NewManagerWithOptions(cfg.FSHPOptions())
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		log:     zerolog.New(stderr).Level(level).With().Timestamp().Logger(),
		manager: m,
	}
	a.cli = &cli.App{
		Name:      "fshp",
		Usage:     "create and verify FSHP password hashes",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		// Run maps errors to exit codes; urfave/cli must not exit itself.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			a.hashCommand(),
			a.checkCommand(),
			a.infoCommand(),
			a.needsRehashCommand(),
		},
	}
	return a, nil
}

// Run executes args (including the program name) and returns the exit code.
func (a *App) Run(args []string) int {
	err := a.cli.Run(args)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errMismatch):
		a.log.Debug().Msg("password mismatch")
		return ExitMismatch
	default:
		a.log.Error().Err(err).Msg("fshp failed")
		return ExitError
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "password",
		Usage: "clear-text password (default: first line of stdin)",
	}
}

func (a *App) hashCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "hash a password",
		Flags: []cli.Flag{
			passwordFlag(),
			&cli.IntFlag{Name: "salt-len", Value: a.cfg.SaltLen, Usage: "random salt length in bytes"},
			&cli.IntFlag{Name: "rounds", Value: a.cfg.Rounds, Usage: "number of digest rounds"},
			&cli.IntFlag{Name: "variant", Value: a.cfg.Variant, Usage: "0=SHA-1 1=SHA-256 2=SHA-384 3=SHA-512"},
			&cli.StringFlag{Name: "salt-hex", Usage: "explicit salt, hex encoded (overrides --salt-len)"},
		},
		Action: func(c *cli.Context) error {
			password, err := readPassword(c)
			if err != nil {
				return err
			}

			var salt []byte
			if c.IsSet("salt-hex") {
				if salt, err = hex.DecodeString(c.String("salt-hex")); err != nil {
					return fmt.Errorf("--salt-hex: %w", err)
				}
				if salt == nil {
					salt = []byte{}
				}
			}
			cfg := a.cfg
			cfg.SaltLen = c.Int("salt-len")
			cfg.Rounds = c.Int("rounds")
			cfg.Variant = c.Int("variant")
			if err := validate.Struct(cfg); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			v := fshp.Variant(cfg.Variant)
			if v == fshp.SHA1 {
				a.log.Warn().Msg("variant 0 (SHA-1) is deprecated")
			}
			a.log.Debug().
				Int("variant", cfg.Variant).
				Int("salt_len", cfg.SaltLen).
				Int("rounds", cfg.Rounds).
				Bool("explicit_salt", salt != nil).
				Msg("hashing password")

			hash, err := fshp.Encode([]byte(password), salt, cfg.SaltLen, cfg.Rounds, v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hash)
			return err
		},
	}
}

func (a *App) checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "verify a password against a stored hash (exit 1 on mismatch)",
		Flags: []cli.Flag{
			passwordFlag(),
			&cli.StringFlag{Name: "hash", Required: true, Usage: "stored hash"},
		},
		Action: func(c *cli.Context) error {
			password, err := readPassword(c)
			if err != nil {
				return err
			}
			ok, err := a.manager.CheckWithDetect(password, c.String("hash"))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(c.App.Writer, "mismatch")
				return errMismatch
			}
			_, err = fmt.Fprintln(c.App.Writer, "ok")
			return err
		},
	}
}

func (a *App) infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print the parameters stored in a hash",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hash", Required: true, Usage: "stored hash"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return fmt.Errorf("info: unexpected arguments %q (pass the hash with --hash)", c.Args().Slice())
			}
			info, err := a.manager.InfoWithDetect(c.String("hash"))
			if err != nil {
				return err
			}
			if c.Bool("json") {
				out, err := sonic.ConfigStd.Marshal(map[string]any{
					"driver": info.Driver,
					"params": info.Params,
				})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, string(out))
				return err
			}

			keys := make([]string, 0, len(info.Params))
			for k := range info.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(c.App.Writer, "driver: %s\n", info.Driver)
			for _, k := range keys {
				fmt.Fprintf(c.App.Writer, "%s: %v\n", k, info.Params[k])
			}
			return nil
		},
	}
}

func (a *App) needsRehashCommand() *cli.Command {
	return &cli.Command{
		Name:  "needs-rehash",
		Usage: "report whether a stored hash differs from the configured parameters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hash", Required: true, Usage: "stored hash"},
		},
		Action: func(c *cli.Context) error {
			needs, err := a.manager.NeedsRehash(c.String("hash"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, needs)
			return err
		},
	}
}

// readPassword returns --password, or the first line of stdin without its
// line terminator.
func readPassword(c *cli.Context) (string, error) {
	if c.IsSet("password") {
		return c.String("password"), nil
	}
	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
