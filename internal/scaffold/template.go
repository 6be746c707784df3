package scaffold

// ExampleName is the command created by Init.
const ExampleName = "exemplo"

// exampleTemplate is written to <commands>/exemplo.md.
const exampleTemplate = `# Example command: answer a request in a few sentences

You are a helpful assistant working on this project.

## Request
$ARGUMENTS

## Instructions
- Answer concisely
- Ask a clarifying question if the request is ambiguous
`
