package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backsoul/gogoquiz/pkg/models"
)

func seedCollection(t *testing.T, svc *QuizService, quizzes ...models.Quiz) {
	t.Helper()
	if err := svc.store.Set(quizKey, quizzes, 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestImportOverwriteReplacesByTitle(t *testing.T) {
	svc, _ := newTestQuizService(t)
	seedCollection(t, svc,
		models.Quiz{ID: "a", Title: "Math"},
		models.Quiz{ID: "z", Title: "Science"},
	)

	result, err := svc.ImportQuizzes([]models.Quiz{{ID: "b", Title: "Math"}}, models.ImportOverwrite)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 quizzes, got %+v", result)
	}
	if result[0].ID != "b" || result[0].Title != "Math" {
		t.Fatalf("expected Math replaced in place by b, got %+v", result[0])
	}
	if result[1].ID != "z" {
		t.Fatalf("expected Science untouched, got %+v", result[1])
	}
}

func TestImportOverwriteAppendsNewTitles(t *testing.T) {
	svc, _ := newTestQuizService(t)
	seedCollection(t, svc, models.Quiz{ID: "a", Title: "Math"})

	result, err := svc.ImportQuizzes([]models.Quiz{{ID: "b", Title: "History"}}, models.ImportOverwrite)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result) != 2 || result[1].ID != "b" {
		t.Fatalf("expected History appended, got %+v", result)
	}
}

func TestImportSkipsExistingIDs(t *testing.T) {
	for _, mode := range []models.ImportMode{models.ImportOverwrite, models.ImportMerge} {
		t.Run(string(mode), func(t *testing.T) {
			svc, _ := newTestQuizService(t)
			seedCollection(t, svc, models.Quiz{ID: "a", Title: "Math"})

			result, err := svc.ImportQuizzes([]models.Quiz{{ID: "a", Title: "Anything"}}, mode)
			if err != nil {
				t.Fatalf("import: %v", err)
			}
			if len(result) != 1 || result[0].Title != "Math" {
				t.Fatalf("expected collection unchanged, got %+v", result)
			}
		})
	}
}

func TestImportMergeAllowsDuplicateTitles(t *testing.T) {
	svc, _ := newTestQuizService(t)
	seedCollection(t, svc, models.Quiz{ID: "a", Title: "Math"})

	result, err := svc.ImportQuizzes([]models.Quiz{{ID: "b", Title: "Math"}}, models.ImportMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result) != 2 || result[0].Title != "Math" || result[1].Title != "Math" {
		t.Fatalf("expected two Math quizzes, got %+v", result)
	}
}

func TestImportAssignsMissingIDs(t *testing.T) {
	svc, _ := newTestQuizService(t)

	result, err := svc.ImportQuizzes([]models.Quiz{{Title: "Math"}, {Title: "Science"}}, models.ImportMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result[0].ID == "" || result[1].ID == "" || result[0].ID == result[1].ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", result[0].ID, result[1].ID)
	}
}

func TestImportDoesNotValidate(t *testing.T) {
	svc, _ := newTestQuizService(t)

	// preguntas con títulos repetidos y sin descripción: se aceptan tal cual
	broken := models.Quiz{
		ID:    "x",
		Title: "Roto",
		Questions: []models.Question{
			sampleQuestion("Repetida", 0),
			sampleQuestion("Repetida", 1),
		},
	}
	result, err := svc.ImportQuizzes([]models.Quiz{broken}, models.ImportMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result) != 1 || len(result[0].Questions) != 2 {
		t.Fatalf("expected imported quiz stored as-is, got %+v", result)
	}

	stored, err := svc.GetQuizByID("x")
	if err != nil {
		t.Fatalf("get imported: %v", err)
	}
	if err := Validate(*stored, stored.Questions); err == nil {
		t.Fatal("expected stored quiz to violate the authoring rules")
	}
}

func TestImportRejectsUnknownMode(t *testing.T) {
	svc, store := newTestQuizService(t)
	if _, err := svc.ImportQuizzes([]models.Quiz{{Title: "Math"}}, models.ImportMode("replace")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, ok := store.Raw(quizKey); ok {
		t.Fatal("expected nothing persisted")
	}
}

func TestExportQuizzes(t *testing.T) {
	svc, _ := newTestQuizService(t)
	seedCollection(t, svc, models.Quiz{ID: "a", Title: "Math"})

	now := time.Date(2026, time.March, 7, 9, 5, 0, 0, time.Local)
	filename, data, err := svc.ExportQuizzes(now, "gogoquiz")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if filename != "0703260905_gogoquiz.json" {
		t.Fatalf("expected 0703260905_gogoquiz.json, got %s", filename)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Fatalf("expected pretty printed JSON, got %s", data)
	}

	var quizzes []models.Quiz
	if err := json.Unmarshal(data, &quizzes); err != nil {
		t.Fatalf("export is not a quiz array: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].ID != "a" {
		t.Fatalf("unexpected exported collection: %+v", quizzes)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source, _ := newTestQuizService(t)
	source.CreateQuiz(sampleQuiz("Math"))
	source.CreateQuiz(sampleQuiz("Science"))

	_, data, err := source.ExportQuizzes(time.Now(), "gogoquiz")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	parsed, err := ParseQuizzesJSON(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	target, _ := newTestQuizService(t)
	result, err := target.ImportQuizzes(parsed, models.ImportOverwrite)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	original, _ := source.GetAllQuizzes()
	if len(result) != len(original) || result[0].ID != original[0].ID || result[1].ID != original[1].ID {
		t.Fatalf("expected exported ids preserved, got %+v", result)
	}
}

func TestParseQuizzesJSONRequiresArray(t *testing.T) {
	if _, err := ParseQuizzesJSON([]byte(`{"id":"a"}`)); err == nil {
		t.Fatal("expected error for non-array document")
	}
	if _, err := ParseQuizzesJSON([]byte(`[{"id":`)); err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestLoadQuizzesFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
- id: "1"
  title: Math
  description: Test your math skills
  questions:
    - id: "1"
      title: What is 2 + 2?
      correctOption: 0
      options:
        - text: "4"
          isCorrect: true
        - text: "22"
          isCorrect: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	quizzes, err := LoadQuizzesFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(quizzes) != 1 || len(quizzes[0].Questions[0].Options) != 2 {
		t.Fatalf("unexpected quizzes: %+v", quizzes)
	}
	flag := quizzes[0].Questions[0].Options[0].IsCorrect
	if flag == nil || !*flag {
		t.Fatal("expected isCorrect flag decoded")
	}
}

func TestSeedQuizzesOnlyWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`[{"id":"1","title":"Math","description":"d","questions":[]}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	svc, _ := newTestQuizService(t)
	count, err := svc.SeedQuizzes(path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 seeded quiz, got %d", count)
	}

	if _, err := svc.DeleteQuiz("1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	svc.CreateQuiz(sampleQuiz("Science"))
	count, err = svc.SeedQuizzes(path)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected seed to be skipped, got %d quizzes", count)
	}
	if _, err := svc.GetQuizByID("1"); err == nil {
		t.Fatal("expected seed file not to be re-imported")
	}
}
