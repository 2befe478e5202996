// Package main demonstrates how emphasis picks and marks a focus term.
// Each section builds a small stage/supposition pair and prints the result
// of applying emphasis to it.
package main

import (
	"fmt"

	"github.com/gitrdm/gokanetr/pkg/emphasis"
	"github.com/gitrdm/gokanetr/pkg/etr"
)

func main() {
	fmt.Println("=== Emphasis Examples ===")
	fmt.Println()

	typePriority()
	occurrenceCount()
	randomTies()
	stageFallback()
	degenerateInputs()
}

// typePriority shows universals beating constants inside one atom.
func typePriority() {
	fmt.Println("1. Type Priority:")

	supposition := etr.NewSetOfStates(
		etr.NewState(etr.MustAtom("P", etr.Const("a"), etr.Universal("x"))),
	)
	show(etr.Verum(), supposition, 1)
}

// occurrenceCount shows counts deciding between terms of the same tier.
func occurrenceCount() {
	fmt.Println("2. Occurrence Count:")

	c1, c2 := etr.Const("c1"), etr.Const("c2")
	supposition := etr.NewSetOfStates(
		etr.NewState(etr.MustAtom("P", c1), etr.MustAtom("Q", c2)),
		etr.NewState(etr.MustAtom("R", c1, c1)),
	)
	show(etr.Verum(), supposition, 1)
}

// randomTies shows different seeds settling a full tie differently.
func randomTies() {
	fmt.Println("3. Random Tie-Breaking:")

	supposition := etr.NewSetOfStates(
		etr.NewState(etr.MustAtom("P", etr.Const("c1")), etr.MustAtom("Q", etr.Const("c2"))),
	)
	for seed := uint64(1); seed <= 4; seed++ {
		_, out, err := emphasis.Apply(etr.Verum(), supposition, emphasis.WithSeed(seed))
		if err != nil {
			fmt.Printf("   seed %d: error: %v\n", seed, err)
			continue
		}
		fmt.Printf("   seed %d: %s\n", seed, out)
	}
	fmt.Println()
}

// stageFallback shows the stage being rewritten when the supposition is
// degenerate.
func stageFallback() {
	fmt.Println("4. Stage Fallback:")

	stage := etr.NewSetOfStates(
		etr.NewState(etr.MustAtom("S", etr.Existential("y"), etr.Func("f", etr.Const("a")))),
	)
	show(stage, etr.Falsum(), 1)
}

// degenerateInputs shows the no-op case.
func degenerateInputs() {
	fmt.Println("5. Degenerate Inputs:")
	show(etr.Falsum(), etr.Verum(), 1)
}

func show(stage, supposition *etr.SetOfStates, seed uint64) {
	fmt.Printf("   before: stage=%s supposition=%s\n", stage, supposition)

	out, err := emphasis.New(emphasis.WithSeed(seed)).Run(stage, supposition)
	if err != nil {
		fmt.Printf("   error: %v\n\n", err)
		return
	}
	fmt.Printf("   target: %s", out.Target)
	if out.Target != emphasis.TargetNone {
		fmt.Printf(", focus %s", out.Focus)
	}
	fmt.Println()
	fmt.Printf("   after:  stage=%s supposition=%s\n", out.Stage, out.Supposition)
	fmt.Println()
}
