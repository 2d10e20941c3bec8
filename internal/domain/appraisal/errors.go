package appraisal

import "errors"

var (
	ErrNotFound               = errors.New("appraisal not found")
	ErrEmployeeRequired       = errors.New("an employee must be selected")
	ErrEvaluationTypeRequired = errors.New("an evaluation type must be selected")
	ErrTemplateRequired       = errors.New("an OKR or 9-box template must be selected")
	ErrWeightageOutOfRange    = errors.New("weightage must be between 0 and 100")
	ErrCriteriaNotLoaded      = errors.New("criteria lines have not been loaded")
	ErrNoCriteriaMatched      = errors.New("no criteria matched the evaluation type and team")
	ErrAlreadyCompleted       = errors.New("appraisal is already completed")
)
