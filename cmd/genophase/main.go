package main

import (
	"github.com/jgbaldwinbrown/genoscrub/pkg"
)

func main() {
	genoscrub.FullPhase()
}
