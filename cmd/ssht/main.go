// Command ssht runs spin spherical harmonic transforms on text files.
package main

import (
	"os"

	"github.com/cwbudde/algo-sht/cmd/ssht/app"
	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()

	if err := app.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		klog.ErrorS(err, "ssht failed")
		klog.Flush()
		os.Exit(1)
	}
}
