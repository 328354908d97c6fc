// Package toolchain shells out to the external nasm assembler and ld
// linker to turn an emitted .s listing into a native executable
// (spec.md §6: "these shell invocations are not part of the core
// spec"). latc build only calls this package when --assemble is
// passed; without it (the default) build stops after internal/codegen
// writes the assembly.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RuntimeObject is the prebuilt runtime archive every linked executable
// pulls _alloc, _new_array, _concat, and the five builtins from.
const RuntimeObject = "lib/runtime.o"

// Assemble runs `nasm -f elf64 asmPath`, producing asmPath with its
// extension replaced by .o, and returns that object file's path.
func Assemble(asmPath string) (objPath string, err error) {
	objPath = strings.TrimSuffix(asmPath, ".s") + ".o"
	cmd := exec.Command("nasm", "-f", "elf64", "-o", objPath, asmPath)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("toolchain: nasm failed: %w", err)
	}
	return objPath, nil
}

// Link runs `ld -o outPath objPath lib/runtime.o`.
func Link(objPath, outPath string) error {
	cmd := exec.Command("ld", "-o", outPath, objPath, RuntimeObject)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("toolchain: ld failed: %w", err)
	}
	return nil
}

// AssembleAndLink runs the full nasm-then-ld pipeline and removes the
// intermediate object file, matching the reference driver's own
// cleanup (spec.md §6).
func AssembleAndLink(asmPath, outPath string) error {
	objPath, err := Assemble(asmPath)
	if err != nil {
		return err
	}
	defer os.Remove(objPath)

	return Link(objPath, outPath)
}
