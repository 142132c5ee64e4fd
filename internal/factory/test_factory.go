package factory

import (
	"time"

	"github.com/dashgames/scrambledash/internal/dependencies/mocks"
	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage/memory"
	"github.com/dashgames/scrambledash/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app, err := newWithDependencies(store, mockClock, mockRandom, "test-admin-password", testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestCatalog loads a small acronym catalog for testing
func (t *TestApp) LoadTestCatalog() error {
	entries := []model.Acronym{
		{Acronym: "SLAPP", Definition: "Strategic Lawsuit Against Public Participation"},
		{Acronym: "OSINT", Definition: "Open Source Intelligence"},
		{Acronym: "VPN", Definition: "Virtual Private Network"},
		{Acronym: "FOI", Definition: "Freedom of Information"},
		{Acronym: "GDPR", Definition: "General Data Protection Regulation"},
	}
	return t.CatalogService.LoadEntries(entries)
}
