// asm.go holds the fixed assembly text surrounding the code the
// generator emits for each statement: the file header, main's
// prologue/epilogue, and the shared error-exit routine.
package compiler

import "fmt"

// header is emitted once, ahead of main, declaring the data section and
// the external C-library routine used to report a division-by-zero at
// runtime. NASM syntax throughout: no assembler directive dialect beyond
// what NASM itself understands.
const header = `
; This assembly file was produced by the compiler.

section .data
div_zero: db "Attempted division by zero. Aborting", 10, 0

section .text
global main
extern printf
extern exit

`

// prologue opens main, sets up the stack frame, and (if debug mode is
// on) drops in a breakpoint before the generated code runs.
func (g *generator) prologue() string {
	out := "main:\n        push rbp\n        mov rbp, rsp\n"
	if size := g.frameSize(); size > 0 {
		out += fmt.Sprintf("        sub rsp, %d\n", size)
	}
	if g.debug {
		out += "        int 3\n"
	}
	return out
}

// epilogue restores the stack and returns zero, followed by the shared
// division-by-zero handler every generated idiv can jump to.
func (g *generator) epilogue() string {
	return `        mov rsp, rbp
        pop rbp
        xor rax, rax
        ret

; Reached when a generated idiv's divisor turns out to be zero at
; runtime (the optimizer only folds division at compile time when both
; operands are already constant).
divide_by_zero:
        lea rdi, [rel div_zero]
        xor rax, rax
        call printf
        mov rdi, 1
        call exit
`
}
