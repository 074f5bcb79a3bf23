package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gatekeep/Trident.RPC-sub004/crypto"
	ex "github.com/gatekeep/Trident.RPC-sub004/exception"
	log "github.com/golang/glog"
	"github.com/monnand/dhkx"
	cli "github.com/urfave/cli/v2"
)

var (
	context = &bootContext{}

	NO_SUCH_ALGORITHM = ex.New("No such digest algorithm:")
)

type bootContext struct {
	vFlag int
	debug bool
}

// global before handler
func (ctx *bootContext) initialize(c *cli.Context) error {
	ctx.vFlag = c.Int("v")
	ctx.debug = c.Bool("debug")
	// inject parameters into package.exception
	ex.DEBUG = ctx.debug
	// glog reads its settings from the process flag set
	flag.CommandLine.Parse(nil)
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(ctx.vFlag))
	return nil
}

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "hash files (or stdin) with the incremental digest engine",
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "algo",
				Aliases: []string{"a"},
				Value:   "sha1",
				Usage:   "digest algorithm",
			},
		},
		Action: context.doDigest,
	}
}

func dhCommand() *cli.Command {
	return &cli.Command{
		Name:  "dh",
		Usage: "Diffie-Hellman domain parameter tools",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the built-in literature-standard groups",
				Action: context.doDHList,
			},
			{
				Name:      "check",
				Usage:     "validate a parameter file and print a summary",
				ArgsUsage: "[section]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "parameter file in nontypical path",
					},
				},
				Action: context.doDHCheck,
			},
			{
				Name:  "gen",
				Usage: "generate a safe-prime group",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "bits",
						Value: 2048,
						Usage: "modulus bit length",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output parameter file (stdout if empty)",
					},
				},
				Action: context.doDHGen,
			},
			{
				Name:      "verify",
				Usage:     "round-trip a key exchange over a group or parameter file",
				ArgsUsage: "<group name | parameter file>",
				Action:    context.doDHVerify,
			},
		},
	}
}

func newDigest(algo string) (crypto.Digest, error) {
	switch strings.ToLower(algo) {
	case "sha1", "sha-1":
		return crypto.NewSHA1(), nil
	}
	return nil, NO_SUCH_ALGORITHM.Apply(algo)
}

func (ctx *bootContext) doDigest(c *cli.Context) (err error) {
	defer func() { ex.Catch(recover(), &err) }()
	d, err := newDigest(c.String("algo"))
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return printDigest(d, os.Stdin, "-")
	}
	for _, name := range c.Args().Slice() {
		f, e := os.Open(name)
		if e != nil {
			return e
		}
		e = printDigest(d, f, name)
		f.Close()
		if e != nil {
			return e
		}
	}
	return nil
}

func printDigest(d crypto.Digest, r io.Reader, label string) error {
	buf := make([]byte, 32*1024)
	for {
		n, e := r.Read(buf)
		if n > 0 {
			if e2 := d.BlockUpdate(buf, 0, n); e2 != nil {
				return e2
			}
		}
		if e == io.EOF {
			break
		}
		if e != nil {
			return e
		}
	}
	sum := make([]byte, d.DigestSize())
	if _, e := d.DoFinal(sum, 0); e != nil {
		return e
	}
	fmt.Printf("%s (%s) = %s\n", d.AlgorithmName(), label, hex.EncodeToString(sum))
	return nil
}

func (ctx *bootContext) doDHList(c *cli.Context) error {
	for _, name := range crypto.StandardGroupNames() {
		params, err := crypto.StandardGroup(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %4d bits  fingerprint=%s\n", name, params.P().BitLen(), params.Fingerprint())
	}
	return nil
}

func (ctx *bootContext) doDHCheck(c *cli.Context) (err error) {
	defer func() { ex.Catch(recover(), &err) }()
	path, err := detectParamFile(c.String("config"))
	if err != nil {
		return err
	}
	section := c.Args().First()
	params, err := loadDHParamsFile(path, section)
	if err != nil {
		return err
	}
	printParams(path, params)
	return nil
}

func printParams(origin string, params *crypto.DHParameters) {
	fmt.Printf("parameters: %s\n", origin)
	fmt.Printf("  p: %d bits\n", params.P().BitLen())
	fmt.Printf("  g: %s\n", params.G().String())
	if q := params.Q(); q != nil {
		fmt.Printf("  q: %d bits\n", q.BitLen())
	}
	if j := params.J(); j != nil {
		fmt.Printf("  j: %s\n", j.String())
	}
	fmt.Printf("  m: %d  l: %d\n", params.M(), params.L())
	fmt.Printf("  fingerprint: %s\n", params.Fingerprint())
}

func (ctx *bootContext) doDHGen(c *cli.Context) (err error) {
	defer func() { ex.Catch(recover(), &err) }()
	bits := c.Int("bits")
	log.Infof("generating %d-bit safe-prime group, this can take a while", bits)
	params, err := crypto.GenerateDHParameters(bits, crypto.DefaultRandom())
	if err != nil {
		return err
	}
	if out := c.String("out"); out != "" {
		if err = saveDHParamsFile(out, params); err != nil {
			return err
		}
		log.Infof("wrote %s fingerprint=%s", out, params.Fingerprint())
		return nil
	}
	var buf bytes.Buffer
	if err = writeDHParams(&buf, params); err != nil {
		return err
	}
	os.Stdout.Write(buf.Bytes())
	return nil
}

func (ctx *bootContext) doDHVerify(c *cli.Context) (err error) {
	defer func() { ex.Catch(recover(), &err) }()
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	arg := c.Args().First()

	params, err := crypto.StandardGroup(arg)
	if err != nil {
		// not a known group name, try as a parameter file
		params, err = loadDHParamsFile(arg, "")
		if err != nil {
			return err
		}
	}
	pr, err := crypto.NewParametersWithDefaultRandom(params)
	if err != nil {
		return err
	}

	group := dhkx.CreateGroup(params.P(), params.G())
	alice, err := group.GeneratePrivateKey(pr.Random())
	if err != nil {
		return err
	}
	bob, err := group.GeneratePrivateKey(pr.Random())
	if err != nil {
		return err
	}
	ka, err := group.ComputeKey(dhkx.NewPublicKey(bob.Bytes()), alice)
	if err != nil {
		return err
	}
	kb, err := group.ComputeKey(dhkx.NewPublicKey(alice.Bytes()), bob)
	if err != nil {
		return err
	}
	if !bytes.Equal(ka.Bytes(), kb.Bytes()) {
		return fmt.Errorf("key exchange over %s diverged", arg)
	}
	fmt.Printf("%s ok, %d-byte shared secret\n", arg, len(ka.Bytes()))
	return nil
}
