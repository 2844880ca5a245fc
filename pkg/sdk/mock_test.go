package gallformers

import (
	"context"

	domgall "github.com/kailas-cloud/gallformers/internal/domain/gall"
	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	galluc "github.com/kailas-cloud/gallformers/internal/usecase/gall"
	healthuc "github.com/kailas-cloud/gallformers/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallformers/internal/usecase/search"
)

// --- glossaryUseCase mock ---

type mockGlossaryUC struct {
	listFn   func(ctx context.Context) ([]domgloss.Entry, error)
	getFn    func(ctx context.Context, word string) (domgloss.Entry, error)
	upsertFn func(ctx context.Context, e domgloss.Entry) (domgloss.Entry, bool, error)
	deleteFn func(ctx context.Context, word string) error
	searchFn func(ctx context.Context, q string) ([]domgloss.Entry, error)
	linkFn   func(ctx context.Context, text string, samePage bool) ([]linker.Segment, error)
	htmlFn   func(ctx context.Context, text string, samePage bool) (string, error)
}

func (m *mockGlossaryUC) List(ctx context.Context) ([]domgloss.Entry, error) {
	return m.listFn(ctx)
}

func (m *mockGlossaryUC) Get(ctx context.Context, word string) (domgloss.Entry, error) {
	return m.getFn(ctx, word)
}

func (m *mockGlossaryUC) Upsert(ctx context.Context, e domgloss.Entry) (domgloss.Entry, bool, error) {
	return m.upsertFn(ctx, e)
}

func (m *mockGlossaryUC) Delete(ctx context.Context, word string) error {
	return m.deleteFn(ctx, word)
}

func (m *mockGlossaryUC) Search(ctx context.Context, q string) ([]domgloss.Entry, error) {
	return m.searchFn(ctx, q)
}

func (m *mockGlossaryUC) LinkText(ctx context.Context, text string, samePage bool) ([]linker.Segment, error) {
	return m.linkFn(ctx, text, samePage)
}

func (m *mockGlossaryUC) RenderHTML(ctx context.Context, text string, samePage bool) (string, error) {
	return m.htmlFn(ctx, text, samePage)
}

// --- gallUseCase mock ---

type mockGallUC struct {
	getFn      func(ctx context.Context, id string) (domgall.Gall, error)
	listFn     func(ctx context.Context) ([]domgall.Gall, error)
	upsertFn   func(ctx context.Context, g domgall.Gall) (bool, error)
	deleteFn   func(ctx context.Context, id string) error
	describeFn func(ctx context.Context, id string) (galluc.Described, error)
}

func (m *mockGallUC) Get(ctx context.Context, id string) (domgall.Gall, error) {
	return m.getFn(ctx, id)
}

func (m *mockGallUC) List(ctx context.Context) ([]domgall.Gall, error) {
	return m.listFn(ctx)
}

func (m *mockGallUC) Upsert(ctx context.Context, g domgall.Gall) (bool, error) {
	return m.upsertFn(ctx, g)
}

func (m *mockGallUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockGallUC) Describe(ctx context.Context, id string) (galluc.Described, error) {
	return m.describeFn(ctx, id)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (searchuc.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (searchuc.Result, error) {
	return m.searchFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
