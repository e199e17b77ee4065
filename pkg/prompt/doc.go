// Package prompt drives a wizard controller from the terminal. Fields are
// asked step by step through a PromptDriver (survey by default), each answer
// is merged with Controller.UpdateField, and the step is validated before
// moving on. Fields that fail validation are asked again with the error
// message shown. Once every step is valid the record is submitted and
// serialized as JSON, form-urlencoded or pretty text.
package prompt
