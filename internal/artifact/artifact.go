package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	classSuffix = ".contract_class.json"
	casmSuffix  = ".compiled_contract_class.json"
)

var (
	ErrUnexpectedPath = errors.New("artifact path does not end with " + classSuffix)
	ErrMalformedClass = errors.New("malformed contract class")
	ErrMalformedCasm  = errors.New("malformed compiled contract class")
)

type (
	// Contract is a Sierra contract class paired with its CASM compilation.
	Contract struct {
		Name      string
		ClassPath string
		CasmPath  string
		Class     json.RawMessage
		Casm      json.RawMessage
		abi       []ABIEntry
	}

	ABIEntry struct {
		Type            string     `json:"type"`
		Name            string     `json:"name"`
		Inputs          []ABIParam `json:"inputs,omitempty"`
		Outputs         []ABIParam `json:"outputs,omitempty"`
		Items           []ABIEntry `json:"items,omitempty"`
		StateMutability string     `json:"state_mutability,omitempty"`
	}

	ABIParam struct {
		Name string `json:"name,omitempty"`
		Type string `json:"type"`
	}

	classDocument struct {
		SierraProgram        []json.RawMessage `json:"sierra_program"`
		ContractClassVersion string            `json:"contract_class_version"`
		ABI                  json.RawMessage   `json:"abi"`
	}

	casmDocument struct {
		Bytecode        []json.RawMessage `json:"bytecode"`
		CompilerVersion string            `json:"compiler_version"`
	}
)

// CasmPath derives the compiled class location from the Sierra class location.
func CasmPath(classPath string) (string, error) {
	if !strings.HasSuffix(classPath, classSuffix) {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedPath, classPath)
	}
	return strings.TrimSuffix(classPath, classSuffix) + casmSuffix, nil
}

// ABI returns the parsed ABI entries of the class.
func (c Contract) ABI() []ABIEntry {
	return c.abi
}

// ConstructorInputs returns the constructor parameter names in declaration order.
// ok is false when the ABI declares no constructor.
func (c Contract) ConstructorInputs() (names []string, ok bool) {
	for _, entry := range c.abi {
		if entry.Type != "constructor" {
			continue
		}
		names = make([]string, 0, len(entry.Inputs))
		for _, input := range entry.Inputs {
			names = append(names, input.Name)
		}
		return names, true
	}
	return nil, false
}

// HasFunction reports whether the ABI exposes a function with the given name,
// either at the top level or inside an interface.
func (c Contract) HasFunction(name string) bool {
	return hasFunction(c.abi, name)
}

func hasFunction(entries []ABIEntry, name string) bool {
	for _, entry := range entries {
		switch entry.Type {
		case "function":
			if entry.Name == name {
				return true
			}
		case "interface":
			if hasFunction(entry.Items, name) {
				return true
			}
		}
	}
	return false
}

func parseClass(raw json.RawMessage) ([]ABIEntry, error) {
	var doc classDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedClass, err)
	}
	if len(doc.SierraProgram) == 0 {
		return nil, fmt.Errorf("%w: sierra_program is empty", ErrMalformedClass)
	}
	if doc.ContractClassVersion == "" {
		return nil, fmt.Errorf("%w: contract_class_version is missing", ErrMalformedClass)
	}

	abi, err := parseABI(doc.ABI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedClass, err)
	}

	return abi, nil
}

// parseABI accepts the ABI either inline or JSON-encoded into a string, as the node returns it.
func parseABI(raw json.RawMessage) ([]ABIEntry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if encoded == "" {
			return nil, nil
		}
		raw = json.RawMessage(encoded)
	}

	var entries []ABIEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse abi: %w", err)
	}

	return entries, nil
}

func parseCasm(raw json.RawMessage) error {
	var doc casmDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedCasm, err)
	}
	if len(doc.Bytecode) == 0 {
		return fmt.Errorf("%w: bytecode is empty", ErrMalformedCasm)
	}
	return nil
}
