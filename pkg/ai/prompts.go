package ai

// QueryPrompt is the grounding prompt for answer generation. The
// assembled graph (or markdown) context is substituted into %s; the
// user's question is sent as the user message.
const QueryPrompt = `# Task Context
You are a helpful assistant answering questions about a document corpus using only the provided context.

# Background Data
%s

# Detailed Task Description & Rules
- Answer the question precisely and concisely using the context above.
- If the context does not contain enough information, state that clearly instead of guessing.
- Format the answer as continuous natural prose, without bullet points or numbering.
- Avoid very short sentences and repetition.
- Answer in the language of the question.
`

// AnnotatePrompt instructs a generation model to act as a linguistic
// annotation engine. It is used by the structured-output annotation
// provider when no annotation server is configured.
const AnnotatePrompt = `# Task Context
You are a linguistic annotation engine. You will be given a text and must return named entities and a dependency analysis.

# Detailed Task Description & Rules
- List every named-entity mention in document order, with its category label (PER, LOC, ORG, MISC or similar). Keep duplicates and keep the exact surface text.
- Segment the text into sentences and tokenize each sentence.
- For every token give its part-of-speech tag (VERB, NOUN, ...), its dependency label (nsubj, dobj, det, ...), and the index of its syntactic head within the same sentence. The sentence root points at itself.
- Do not normalize, translate or deduplicate any text.
`
