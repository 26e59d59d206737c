package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"rama/internal/graphics"
)

var (
	errNoVertex   = errors.New("missing @vertex section")
	errNoFragment = errors.New("missing @fragment section")
)

// check splits the file at path and compiles it with res. The program is
// destroyed again right away.
func check(res *graphics.Resources, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, err := graphics.ParseShaderSource(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var errs []error
	if strings.TrimSpace(src.Vertex) == "" {
		errs = append(errs, errNoVertex)
	}
	if strings.TrimSpace(src.Fragment) == "" {
		errs = append(errs, errNoFragment)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s, err := res.LoadShader(path)
	if s != nil {
		s.Destroy()
	}
	return err
}
