package generator

import "fmt"

// promptTemplate instructs the model to ground its answer in the retrieved
// context and to admit when the context does not contain the answer. The
// wording is a presentation concern — the contract is only that the assembled
// context and the question are both embedded.
const promptTemplate = `You are DocuChat, a helpful assistant that answers questions based on uploaded documents.

Use the following context from the user's documents to answer their question. If the answer is not in the context, say "I couldn't find information about that in your documents."

Be concise but thorough. Cite specific information from the documents when relevant.

CONTEXT FROM DOCUMENTS:
%s

USER QUESTION: %s

ANSWER:`

// BuildPrompt renders the generation prompt from the assembled context text
// and the user's question.
func BuildPrompt(contextText, question string) string {
	return fmt.Sprintf(promptTemplate, contextText, question)
}
