//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-sss-recover/internal/config"
	"github.com/smallyu/go-sss-recover/internal/encoding/basen"
	"github.com/smallyu/go-sss-recover/internal/protocol/reconstruct"
	"github.com/smallyu/go-sss-recover/internal/share"
)

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go SSS-Recover WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoSSS", map[string]interface{}{
		"Recover": js.FuncOf(Recover),
		"Decode":  js.FuncOf(Decode),
	})

	<-c
}

// Recover reconstructs the secret of a share record.
// Arguments:
// 0: JSON string of the share record ({"keys": {...}, "1": {...}, ...})
// 1: optional JSON string of parameters
// Returns:
// JSON report string or "error: ..."
func Recover(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || len(args) > 2 {
		return "error: expected 1 or 2 arguments (jsonRecord, [jsonParams])"
	}
	if args[0].Type() != js.TypeString {
		return "error: jsonRecord must be a string"
	}

	// Define a struct to unmarshal JSON params
	// This mirrors sss.Parameters with JSON names
	type ParamsInput struct {
		Workers             int    `json:"workers"`
		MaxSubsets          uint64 `json:"maxSubsets"`
		Curve               string `json:"curve"`
		ExpectedFingerprint string `json:"expectFingerprint"`
		CrossCheck          bool   `json:"crossCheck"`
	}

	params := config.Default()
	if len(args) == 2 && args[1].Type() == js.TypeString {
		var input ParamsInput
		if err := json.Unmarshal([]byte(args[1].String()), &input); err != nil {
			return fmt.Sprintf("error: invalid params json: %v", err)
		}
		if input.Workers != 0 {
			params.Workers = input.Workers
		}
		if input.MaxSubsets != 0 {
			params.MaxSubsets = input.MaxSubsets
		}
		params.Curve = input.Curve
		params.ExpectedFingerprint = input.ExpectedFingerprint
		params.CrossCheck = input.CrossCheck
	}
	params, err := config.Sanitize(params)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	rec, err := share.Parse([]byte(args[0].String()), share.FormatJSON)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	set, err := share.FromRecord(rec)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	report, err := reconstruct.Run(context.Background(), set, &params, nil)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	// int64 values above 2^53 lose precision once JS parses the report.
	respBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Sprintf("error: marshal report failed: %v", err)
	}
	return string(respBytes)
}

// Decode converts a single value.
// Arguments:
// 0: value string
// 1: base (number)
// Returns:
// decimal string or "error: ..."
func Decode(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (value, base)"
	}
	if args[0].Type() != js.TypeString || args[1].Type() != js.TypeNumber {
		return "error: expected a string value and a number base"
	}
	v, err := basen.Decode(args[0].String(), args[1].Int())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return fmt.Sprintf("%d", v)
}
