// Command propview extracts component metadata from a TypeScript/JSX
// project and serves it to preview tooling.
package main

func main() {
	Execute()
}
