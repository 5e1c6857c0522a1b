// Package emit formats extracted page text into the final transcript
// artifacts.
//
// Pages are concatenated with a literal delimiter line ("--- Page N ---"
// followed by a blank line). The delimiter format is part of the contract:
// the DOCX emitter re-splits the concatenated text on it to recover
// per-page content, so the two sides must stay in lockstep.
package emit
