//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-toy-ecdh/internal/utils"
	"github.com/smallyu/go-toy-ecdh/pkg/ecdh"
)

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Toy ECDH WASM Initialized")

	js.Global().Set("ToyECDH", map[string]interface{}{
		"enumerate": js.FuncOf(Enumerate),
		"exchange":  js.FuncOf(Exchange),
	})

	<-c
}

// Enumerate lists the affine points of a curve.
// Arguments:
// 0: a, 1: b, 2: p as decimal or 0x-prefixed strings
// Returns:
// JSON array of {"x","y"} or an "error: ..." string
func Enumerate(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (a, b, p)"
	}
	var coeffs [3]*big.Int
	for i, arg := range args {
		v, ok := new(big.Int).SetString(arg.String(), 0)
		if !ok {
			return fmt.Sprintf("error: invalid integer %q", arg.String())
		}
		coeffs[i] = v
	}

	pts, err := ecdh.EnumeratePoints(coeffs[0], coeffs[1], coeffs[2])
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	out, err := utils.MarshalJSON(pts)
	if err != nil {
		return fmt.Sprintf("error: marshal points failed: %v", err)
	}
	return string(out)
}

// exchangeInput is the JSON accepted by Exchange. Numbers are strings.
type exchangeInput struct {
	Curve     string      `json:"curve"`
	A         string      `json:"a"`
	B         string      `json:"b"`
	P         string      `json:"p"`
	Generator *ecdh.Point `json:"generator"`
	M         string      `json:"m"`
	N         string      `json:"n"`
	Top       int         `json:"top"`
}

func parse(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func (in *exchangeInput) group() (ecdh.Group, error) {
	if in.Curve == "secp256k1" {
		return ecdh.NewSecp256k1(), nil
	}
	var coeffs [3]*big.Int
	for i, s := range []string{in.A, in.B, in.P} {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		if v == nil {
			v = new(big.Int)
		}
		coeffs[i] = v
	}
	return ecdh.NewCurve(coeffs[0], coeffs[1], coeffs[2])
}

// Exchange runs one Diffie-Hellman exchange.
// Arguments:
// 0: JSON string of parameters
// Returns:
// JSON result or an "error: ..." string
func Exchange(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonParams)"
	}

	var input exchangeInput
	if err := utils.UnmarshalJSON([]byte(args[0].String()), &input); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	group, err := input.group()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	params := ecdh.Params{Generator: input.Generator}
	if params.M, err = parse(input.M); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	if params.N, err = parse(input.N); err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	opts := []ecdh.Option{}
	if input.Top != 0 {
		opts = append(opts, ecdh.WithCandidates(input.Top))
	}
	res, err := ecdh.NewExchange(group, opts...).Run(context.Background(), params)
	if err != nil {
		return fmt.Sprintf("error: exchange failed: %v", err)
	}
	out, err := utils.MarshalJSON(res)
	if err != nil {
		return fmt.Sprintf("error: marshal result failed: %v", err)
	}
	return string(out)
}
