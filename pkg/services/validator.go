package services

import "github.com/backsoul/gogoquiz/pkg/models"

// ValidationRule identifica la regla que falló
type ValidationRule string

const (
	RuleTitleRequired         ValidationRule = "title_required"
	RuleDescriptionRequired   ValidationRule = "description_required"
	RuleQuestionsRequired     ValidationRule = "questions_required"
	RuleQuestionTitleRequired ValidationRule = "question_title_required"
	RuleQuestionTitleUnique   ValidationRule = "question_title_unique"
	RuleOptionsRequired       ValidationRule = "options_required"
	RuleOptionTextRequired    ValidationRule = "option_text_required"
	RuleSingleCorrectOption   ValidationRule = "single_correct_option"
	RuleCorrectOptionRange    ValidationRule = "correct_option_range"
	RuleCorrectOptionMismatch ValidationRule = "correct_option_mismatch"
)

var ruleMessages = map[ValidationRule]string{
	RuleTitleRequired:         "El título es obligatorio",
	RuleDescriptionRequired:   "La descripción es obligatoria",
	RuleQuestionsRequired:     "Las preguntas son obligatorias",
	RuleQuestionTitleRequired: "Las preguntas deben tener un título",
	RuleQuestionTitleUnique:   "Las preguntas deben tener títulos únicos",
	RuleOptionsRequired:       "Las preguntas deben tener al menos una opción",
	RuleOptionTextRequired:    "Las opciones deben tener texto",
	RuleSingleCorrectOption:   "Cada pregunta debe tener exactamente una opción correcta",
	RuleCorrectOptionRange:    "La opción correcta de la pregunta es inválida",
	RuleCorrectOptionMismatch: "La opción marcada como correcta no coincide con correctOption",
}

func invalid(rule ValidationRule) *ValidationError {
	return &ValidationError{Rule: rule, Message: ruleMessages[rule]}
}

// Validate revisa un quiz y sus preguntas. Devuelve la primera regla incumplida.
//
// correctOption es la única fuente de verdad para la corrección. Si alguna
// opción trae isCorrect, debe haber exactamente una marcada y debe coincidir
// con correctOption.
func Validate(quiz models.Quiz, questions []models.Question) error {
	if quiz.Title == "" {
		return invalid(RuleTitleRequired)
	}
	if quiz.Description == "" {
		return invalid(RuleDescriptionRequired)
	}
	if len(questions) == 0 {
		return invalid(RuleQuestionsRequired)
	}

	for _, q := range questions {
		if q.Title == "" {
			return invalid(RuleQuestionTitleRequired)
		}
	}

	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, dup := seen[q.Title]; dup {
			return invalid(RuleQuestionTitleUnique)
		}
		seen[q.Title] = struct{}{}
	}

	for _, q := range questions {
		if len(q.Options) == 0 {
			return invalid(RuleOptionsRequired)
		}
	}

	for _, q := range questions {
		for _, o := range q.Options {
			if o.Text == "" {
				return invalid(RuleOptionTextRequired)
			}
		}
	}

	for _, q := range questions {
		if flagged, hasFlags := flaggedOption(q); hasFlags && flagged < 0 {
			return invalid(RuleSingleCorrectOption)
		}
	}

	for _, q := range questions {
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return invalid(RuleCorrectOptionRange)
		}
	}

	for _, q := range questions {
		if flagged, hasFlags := flaggedOption(q); hasFlags && flagged != q.CorrectOption {
			return invalid(RuleCorrectOptionMismatch)
		}
	}

	return nil
}

// flaggedOption devuelve el índice de la única opción con isCorrect=true, o -1
// si no hay exactamente una. hasFlags es false cuando ninguna opción trae el campo.
func flaggedOption(q models.Question) (idx int, hasFlags bool) {
	idx = -1
	count := 0
	for i, o := range q.Options {
		if o.IsCorrect == nil {
			continue
		}
		hasFlags = true
		if *o.IsCorrect {
			count++
			idx = i
		}
	}
	if count != 1 {
		idx = -1
	}
	return idx, hasFlags
}
