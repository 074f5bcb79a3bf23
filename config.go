package main

import (
	"io"
	"math/big"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gatekeep/Trident.RPC-sub004/crypto"
	"github.com/gatekeep/Trident.RPC-sub004/exception"
	"github.com/go-ini/ini"
	"github.com/kardianos/osext"
)

const (
	CF_SECTION = "dhparams"
	CF_P       = "P"
	CF_G       = "G"
	CF_Q       = "Q"
	CF_J       = "J"
	CF_M       = "M"
	CF_L       = "L"

	PARAM_FILE_NAME = "trident-dh.ini"
)

var (
	FILE_NOT_FOUND = exception.New("File not found")
	CONF_MISS      = exception.New("Missed field in config:")
	CONF_ERROR     = exception.New("Error field in config:")
)

// detectParamFile resolves the parameter file path: an explicitly
// specified file must exist; otherwise search cwd, the executable
// folder, then the home directory.
func detectParamFile(specifiedFile string) (string, error) {
	if specifiedFile != "" {
		if isNotExist(specifiedFile) {
			return "", FILE_NOT_FOUND.Apply(specifiedFile)
		}
		return specifiedFile, nil
	}
	paths := []string{PARAM_FILE_NAME} // cwd
	if ef, err := osext.ExecutableFolder(); err == nil {
		paths = append(paths, filepath.Join(ef, PARAM_FILE_NAME))
	}
	var home string
	if u, err := user.Current(); err == nil {
		home = u.HomeDir
	} else {
		home = os.Getenv("HOME")
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, PARAM_FILE_NAME))
	}
	for _, p := range paths {
		if !isNotExist(p) {
			return p, nil
		}
	}
	return "", FILE_NOT_FOUND.Apply(PARAM_FILE_NAME)
}

func isNotExist(file string) bool {
	_, err := os.Stat(file)
	return os.IsNotExist(err)
}

// loadDHParamsFile reads one section of a parameter file and runs the
// values through normal construction validation. P and G are required
// hex fields; Q, J, M, L are optional.
func loadDHParamsFile(path, section string) (*crypto.DHParameters, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, CONF_ERROR.Apply(err)
	}
	if section == "" {
		section = CF_SECTION
	}
	sec, err := f.GetSection(section)
	if err != nil {
		return nil, CONF_MISS.Apply("section " + section)
	}

	p, err := hexField(sec, CF_P, true)
	if err != nil {
		return nil, err
	}
	g, err := hexField(sec, CF_G, true)
	if err != nil {
		return nil, err
	}
	q, err := hexField(sec, CF_Q, false)
	if err != nil {
		return nil, err
	}
	j, err := hexField(sec, CF_J, false)
	if err != nil {
		return nil, err
	}
	l := sec.Key(CF_L).MustInt(0)
	m := sec.Key(CF_M).MustInt(0)
	if m == 0 {
		m = crypto.DH_DEFAULT_MINIMUM_LENGTH
		if l != 0 && l < m {
			m = l
		}
	}
	return crypto.NewDHParametersFull(p, g, q, j, m, l, nil)
}

func hexField(sec *ini.Section, name string, required bool) (*big.Int, error) {
	if !sec.HasKey(name) {
		if required {
			return nil, CONF_MISS.Apply(name)
		}
		return nil, nil
	}
	raw := strings.TrimSpace(sec.Key(name).String())
	if raw == "" {
		if required {
			return nil, CONF_MISS.Apply(name)
		}
		return nil, nil
	}
	v, ok := new(big.Int).SetString(raw, 16)
	if !ok {
		return nil, CONF_ERROR.Apply(name + " is not valid hex")
	}
	return v, nil
}

func saveDHParamsFile(path string, params *crypto.DHParameters) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeDHParams(f, params)
}

func writeDHParams(w io.Writer, params *crypto.DHParameters) error {
	f := ini.Empty()
	sec, err := f.NewSection(CF_SECTION)
	if err != nil {
		return err
	}
	sec.NewKey(CF_P, params.P().Text(16))
	sec.NewKey(CF_G, params.G().Text(16))
	if q := params.Q(); q != nil {
		sec.NewKey(CF_Q, q.Text(16))
	}
	if j := params.J(); j != nil {
		sec.NewKey(CF_J, j.Text(16))
	}
	if params.M() != 0 {
		sec.NewKey(CF_M, strconv.Itoa(params.M()))
	}
	if params.L() != 0 {
		sec.NewKey(CF_L, strconv.Itoa(params.L()))
	}
	_, err = f.WriteTo(w)
	return err
}
