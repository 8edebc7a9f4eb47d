package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smallyu/go-toy-ecdh/pkg/ecdh"
	"github.com/smallyu/go-toy-ecdh/pkg/logging"
)

const envPrefix = "ECDH"

const (
	curveCustom    = "custom"
	curveSecp256k1 = "secp256k1"
)

// config is the merged view of flags, environment and config file. Numbers
// are strings so they can exceed 64 bits and be written in hex.
type config struct {
	Curve    string `mapstructure:"curve"`
	A        string `mapstructure:"a"`
	B        string `mapstructure:"b"`
	P        string `mapstructure:"p"`
	Gx       string `mapstructure:"gx"`
	Gy       string `mapstructure:"gy"`
	M        string `mapstructure:"m"`
	N        string `mapstructure:"n"`
	Top      int    `mapstructure:"top"`
	Workers  int    `mapstructure:"workers"`
	JSON     bool   `mapstructure:"json"`
	LogLevel string `mapstructure:"log-level"`
	Config   string `mapstructure:"config"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	return v
}

// load binds flags into v, reads the optional config file and decodes the
// result.
func load(v *viper.Viper, flags *pflag.FlagSet) (*config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, cfg.validate()
}

func (c *config) validate() error {
	switch c.Curve {
	case curveCustom:
		if c.P == "" {
			return errors.New("--p is required for a custom curve")
		}
	case curveSecp256k1:
	default:
		return errors.Errorf("unknown curve %q, want %s or %s", c.Curve, curveCustom, curveSecp256k1)
	}
	if (c.Gx == "") != (c.Gy == "") {
		return errors.New("--gx and --gy must be given together")
	}
	return nil
}

func parseInt(name, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.Errorf("invalid integer for %s: %q", name, s)
	}
	return v, nil
}

// group builds the curve the configuration names.
func (c *config) group() (ecdh.Group, error) {
	if c.Curve == curveSecp256k1 {
		return ecdh.NewSecp256k1(), nil
	}
	var (
		coeffs [3]*big.Int
		err    error
	)
	for i, f := range []struct{ name, value string }{{"a", c.A}, {"b", c.B}, {"p", c.P}} {
		if coeffs[i], err = parseInt(f.name, f.value); err != nil {
			return nil, err
		}
		if coeffs[i] == nil {
			coeffs[i] = new(big.Int)
		}
	}
	return ecdh.NewCurve(coeffs[0], coeffs[1], coeffs[2])
}

func (c *config) params() (ecdh.Params, error) {
	var (
		p   ecdh.Params
		err error
	)
	if p.M, err = parseInt("m", c.M); err != nil {
		return p, err
	}
	if p.N, err = parseInt("n", c.N); err != nil {
		return p, err
	}
	if c.Gx != "" {
		x, err := parseInt("gx", c.Gx)
		if err != nil {
			return p, err
		}
		y, err := parseInt("gy", c.Gy)
		if err != nil {
			return p, err
		}
		g := ecdh.NewPoint(x, y)
		p.Generator = &g
	}
	return p, nil
}

// logger builds a console logger on stderr, or a JSON one when the output is
// JSON as well.
func (c *config) logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewDevelopmentConfig()
	if c.JSON {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func (c *config) appLogger() (logging.Logger, func(), error) {
	zl, err := c.logger()
	if err != nil {
		return nil, nil, err
	}
	return logging.New(zl), func() { _ = zl.Sync() }, nil
}
