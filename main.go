package main

import (
	"fmt"
	"os"

	"github.com/Aashish23092/va-benefits-estimator/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
