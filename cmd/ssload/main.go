// 19 Oct 2026

package main

import (
	"os"

	"github.com/andrew-torda/sstruct/pkg/ssload"
)

func main() {
	os.Exit(ssload.Execute())
}
