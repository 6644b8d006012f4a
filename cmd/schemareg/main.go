// SPDX-License-Identifier: MPL-2.0

// schemareg validates structured payloads against a directory of schema
// definitions, with optional version selection and hot reload.
package main

func main() {
	Execute()
}
