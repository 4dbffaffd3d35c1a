// Command mlkemctl is an operator-facing front end for ML-KEM key
// generation, encapsulation, decapsulation, and keypair validation,
// exchanging hex-encoded byte strings over stdout/stdin/flags.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/latticekem/mlkem/pkg/mlkem"
	"github.com/latticekem/mlkem/pkg/mlkem/params"
	"github.com/latticekem/mlkem/pkg/mlkem/randsrc"
	log "github.com/latticekem/mlkem/pkg/mlog"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "mlkemctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mlkemctl",
		Usage: "generate, encapsulate, and decapsulate ML-KEM keys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "params",
				Value: params.MLKEM768.Name,
				Usage: "parameter set: ML-KEM-512, ML-KEM-768, or ML-KEM-1024",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level: debug, info, warn, error",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetDefault(log.New(log.LevelFromString(c.String("log-level"))))
			return nil
		},
		Commands: []*cli.Command{
			keygenCommand(),
			encapsCommand(),
			decapsCommand(),
			validateCommand(),
		},
	}
}

func resolveParams(c *cli.Context) (params.ParameterSet, error) {
	p, ok := params.ByName(c.String("params"))
	if !ok {
		return params.ParameterSet{}, fmt.Errorf("unknown parameter set %q", c.String("params"))
	}
	return p, nil
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate an encapsulation/decapsulation key pair",
		Action: func(c *cli.Context) error {
			p, err := resolveParams(c)
			if err != nil {
				return err
			}
			logger := log.Default().ForOperation("cli", log.OpKeyGen)

			ek, dk, err := mlkem.GenerateKeyPair(p, randsrc.Default())
			if err != nil {
				return err
			}

			logger.Info("generated key pair", "params", p.Name, "ek_len", len(ek.Bytes()), "dk_len", len(dk.Bytes()))
			fmt.Println("ek:", hex.EncodeToString(ek.Bytes()))
			fmt.Println("dk:", hex.EncodeToString(dk.Bytes()))
			dk.Zero()
			return nil
		},
	}
}

func encapsCommand() *cli.Command {
	return &cli.Command{
		Name:      "encaps",
		Usage:     "encapsulate a shared secret against an encapsulation key",
		ArgsUsage: "<ek-hex>",
		Action: func(c *cli.Context) error {
			p, err := resolveParams(c)
			if err != nil {
				return err
			}
			if c.NArg() != 1 {
				return fmt.Errorf("encaps requires exactly one argument: <ek-hex>")
			}
			ekBytes, err := hex.DecodeString(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("decoding ek hex: %w", err)
			}

			ek, err := mlkem.EncapsulationKeyFromBytes(p, ekBytes)
			if err != nil {
				return err
			}

			logger := log.Default().ForOperation("cli", log.OpEncaps)
			ssk, ct, err := ek.Encapsulate(randsrc.Default())
			if err != nil {
				return err
			}

			logger.Info("encapsulated", "params", p.Name, "ct_len", len(ct.Bytes()))
			fmt.Println("ct:", hex.EncodeToString(ct.Bytes()))
			fmt.Println("ss:", hex.EncodeToString(ssk[:]))
			ssk.Zero()
			return nil
		},
	}
}

func decapsCommand() *cli.Command {
	return &cli.Command{
		Name:      "decaps",
		Usage:     "decapsulate a shared secret from a ciphertext",
		ArgsUsage: "<dk-hex> <ct-hex>",
		Action: func(c *cli.Context) error {
			p, err := resolveParams(c)
			if err != nil {
				return err
			}
			if c.NArg() != 2 {
				return fmt.Errorf("decaps requires exactly two arguments: <dk-hex> <ct-hex>")
			}
			dkBytes, err := hex.DecodeString(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("decoding dk hex: %w", err)
			}
			ctBytes, err := hex.DecodeString(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("decoding ct hex: %w", err)
			}

			dk, err := mlkem.DecapsulationKeyFromBytes(p, dkBytes)
			if err != nil {
				return err
			}
			ct, err := mlkem.CiphertextFromBytes(p, ctBytes)
			if err != nil {
				return err
			}

			logger := log.Default().ForOperation("cli", log.OpDecaps)
			ssk, err := dk.Decapsulate(ct)
			if err != nil {
				return err
			}

			logger.Info("decapsulated", "params", p.Name)
			fmt.Println("ss:", hex.EncodeToString(ssk[:]))
			ssk.Zero()
			dk.Zero()
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check that an encapsulation/decapsulation key pair match",
		ArgsUsage: "<ek-hex> <dk-hex>",
		Action: func(c *cli.Context) error {
			p, err := resolveParams(c)
			if err != nil {
				return err
			}
			if c.NArg() != 2 {
				return fmt.Errorf("validate requires exactly two arguments: <ek-hex> <dk-hex>")
			}
			ekBytes, err := hex.DecodeString(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("decoding ek hex: %w", err)
			}
			dkBytes, err := hex.DecodeString(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("decoding dk hex: %w", err)
			}

			ok := mlkem.ValidateKeypairVartime(p, ekBytes, dkBytes)
			log.Default().ForOperation("cli", log.OpValidate).Info("validated keypair", "params", p.Name, "ok", ok)
			if !ok {
				fmt.Println("INVALID")
				return cli.Exit("keypair failed validation", 1)
			}
			fmt.Println("VALID")
			return nil
		},
	}
}
