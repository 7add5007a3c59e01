// Package config loads a relayer.Config from a YAML configuration file,
// treating unrecognized keys as errors rather than silently ignoring them.
package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	osuser "os/user"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/relayer"
)

// Known keys. All others are treated as errors.
const (
	authServiceAddr           = "auth_service_addr"
	backendAddr               = "backend_addr"
	expectedHeartbeatInterval = "expected_heartbeat_interval"
	oldestAllowedHeartbeat    = "oldest_allowed_heartbeat"
	trustPackets              = "trust_packets"
)

var defaultVals = map[string]string{
	authServiceAddr:           "",
	backendAddr:               "",
	expectedHeartbeatInterval: "2s",
	oldestAllowedHeartbeat:    "10s",
	trustPackets:              "false",
}

// FromFile initializes a relayer.Config using the given file. If the file
// cannot be opened but the name can be found relative to $HOME/relayer,
// that file is used instead.
func FromFile(name string) (relayer.Config, error) {
	f, err := os.Open(name)
	if err != nil && !filepath.IsAbs(name) && os.IsNotExist(err) {
		home, errHome := Homedir()
		if errHome == nil {
			f, err = os.Open(filepath.Join(home, "relayer", name))
		}
	}
	if err != nil {
		const op = "config.FromFile"
		return relayer.Config{}, errors.E(op, err)
	}
	defer f.Close()
	return InitConfig(f)
}

// InitConfig returns a relayer.Config generated from a YAML configuration
// file.
//
// A configuration file should be of the format
//
//	# lines that begin with a hash are ignored
//	key: value
//
// where key is one of auth_service_addr, backend_addr,
// expected_heartbeat_interval, oldest_allowed_heartbeat, or trust_packets.
// Unrecognized keys are an error.
//
// If r is nil, $HOME/relayer/config is read instead.
func InitConfig(r io.Reader) (relayer.Config, error) {
	const op = "config.InitConfig"
	vals := make(map[string]string, len(defaultVals))
	for k, v := range defaultVals {
		vals[k] = v
	}

	if r == nil {
		home, err := Homedir()
		if err != nil {
			return relayer.Config{}, errors.E(op, err)
		}
		f, err := os.Open(filepath.Join(home, "relayer/config"))
		if err != nil {
			return relayer.Config{}, errors.E(op, err)
		}
		r = f
		defer f.Close()
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return relayer.Config{}, errors.E(op, err)
	}
	if err := valsFromYAML(vals, data); err != nil {
		return relayer.Config{}, errors.E(op, err)
	}

	heartbeatInterval, err := time.ParseDuration(vals[expectedHeartbeatInterval])
	if err != nil {
		return relayer.Config{}, errors.E(op, errors.InvalidConfig, errors.Errorf("%s: %v", expectedHeartbeatInterval, err))
	}
	oldestHeartbeat, err := time.ParseDuration(vals[oldestAllowedHeartbeat])
	if err != nil {
		return relayer.Config{}, errors.E(op, errors.InvalidConfig, errors.Errorf("%s: %v", oldestAllowedHeartbeat, err))
	}
	trust, err := parseBool(vals[trustPackets])
	if err != nil {
		return relayer.Config{}, errors.E(op, errors.InvalidConfig, errors.Errorf("%s: %v", trustPackets, err))
	}

	cfg := relayer.Config{
		AuthServiceAddr:           vals[authServiceAddr],
		BackendAddr:               vals[backendAddr],
		ExpectedHeartbeatInterval: heartbeatInterval,
		OldestAllowedHeartbeat:    oldestHeartbeat,
		TrustPackets:              trust,
	}
	if err := cfg.Validate(); err != nil {
		return relayer.Config{}, errors.E(op, err)
	}
	return cfg, nil
}

// valsFromYAML parses YAML from data and puts the values into vals.
// Unrecognized keys generate an error.
func valsFromYAML(vals map[string]string, data []byte) error {
	newVals := map[string]interface{}{}
	if err := yaml.Unmarshal(data, newVals); err != nil {
		return errors.E(errors.InvalidConfig, errors.Errorf("parsing YAML file: %v", err))
	}
	for k, v := range newVals {
		if _, ok := vals[k]; !ok {
			return errors.E(errors.InvalidConfig, errors.Errorf("unrecognized key %q", k))
		}
		s, err := asString(v)
		if err != nil {
			return errors.E(errors.InvalidConfig, errors.Errorf("%q: %v", k, err))
		}
		vals[k] = s
	}
	return nil
}

// asString tries to convert a value back into its original string. This
// will not always be possible but should be for all our expected use cases.
func asString(v interface{}) (string, error) {
	switch vc := v.(type) {
	case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
		return fmt.Sprintf("%v", vc), nil
	case string:
		return vc, nil
	}
	return "", errors.Errorf("unrecognized value %T", v)
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "yes", "y":
		return true, nil
	case "false", "no", "n", "":
		return false, nil
	}
	return false, errors.Errorf("invalid boolean %q", s)
}

// Homedir returns the calling user's home directory.
func Homedir() (string, error) {
	u, err := osuser.Current()
	// user.Current may return an error, but we should only handle it if
	// it returns a nil user: os/user is wonky without cgo, but works well
	// enough for our purposes.
	if u == nil {
		e := errors.Str("lookup of current user failed")
		if err != nil {
			e = errors.Errorf("%v: %v", e, err)
		}
		return "", e
	}
	h := u.HomeDir
	if h == "" {
		return "", errors.Str("user home directory not found")
	}
	if err := isDir(h); err != nil {
		return "", err
	}
	return h, nil
}

func isDir(p string) error {
	fi, err := os.Stat(p)
	if err != nil {
		return errors.Errorf("%v", err)
	}
	if !fi.IsDir() {
		return errors.Errorf("%s is not a directory", p)
	}
	return nil
}
