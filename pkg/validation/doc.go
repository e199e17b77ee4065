// Package validation provides the field-level building blocks of step
// validation: FieldValidator functions and their builtin rules, a builder that
// turns declarative model rules into validators, message rendering with an
// optional Translator, and the Issue type external schema collaborators report
// along with MapIssues, which normalises collaborator paths onto field names.
package validation
