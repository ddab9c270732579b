// Command osc is the script tooling for OpenSesame experiment files:
// validation, formatting, reference inspection and evaluation.
package main

func main() {
	Execute()
}
