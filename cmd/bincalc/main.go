package main

import (
	"go.brendoncarroll.net/star"

	"bincalc.org/bincalc/calccmd"
)

func main() {
	star.Main(calccmd.Root())
}
