package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// MockProfessionalRepository is a mock implementation of ProfessionalRepository
type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) ReplaceAll(ctx context.Context, professionals []model.Professional) error {
	args := m.Called(ctx, professionals)
	return args.Error(0)
}

func (m *MockProfessionalRepository) SearchByRegistration(ctx context.Context, registration string, limit int) ([]model.Professional, error) {
	args := m.Called(ctx, registration, limit)
	return args.Get(0).([]model.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) SearchFreeText(ctx context.Context, query string, limit int) ([]model.Professional, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]model.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestProfessionalImportService_Import(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("csv with header variants and extra columns", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		csvContent := "Número CRO,Nome Completo,Categoria,E-mail,Observação Interna\n" +
			"12345,Carlos Souza,Cirurgião-Dentista,carlos@example.org,Transferido em 2024\n" +
			"67890,Fernanda Lima,Técnico em Prótese,,\n" +
			",Linha de Rodapé Sem Inscrição,,,\n"

		var captured []model.Professional
		repo.On("ReplaceAll", ctx, mock.AnythingOfType("[]model.Professional")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).([]model.Professional)
			}).
			Return(nil)

		count, batch, err := service.Import(ctx, "profissionais.csv", []byte(csvContent))

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.NotEqual(t, uuid.Nil, batch)

		require.Len(t, captured, 2)
		assert.Equal(t, "12345", captured[0].Registration)
		assert.Equal(t, "Carlos Souza", captured[0].Name)
		assert.Equal(t, "Cirurgião-Dentista", captured[0].Category)
		assert.Equal(t, "carlos@example.org", captured[0].Email)
		// Unmapped columns land in the extra-info JSON blob.
		assert.Contains(t, captured[0].ExtraInfo, "Transferido em 2024")
		assert.Equal(t, batch, captured[0].ImportBatch)
		// The footer row without a registration number is skipped.
		assert.Equal(t, "67890", captured[1].Registration)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		_, _, err := service.Import(ctx, "profissionais.pdf", []byte("%PDF"))
		assert.Error(t, err)
	})

	t.Run("unrecognized header", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		_, _, err := service.Import(ctx, "dados.csv", []byte("foo,bar\n1,2\n"))
		assert.Error(t, err)
	})

	t.Run("header only fails", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		_, _, err := service.Import(ctx, "dados.csv", []byte("cro,nome\n"))
		assert.Error(t, err)
	})
}

func TestProfessionalImportService_Search(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("numeric query matches registration", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		repo.On("SearchByRegistration", ctx, "12345", 50).
			Return([]model.Professional{{Registration: "12345", Name: "Carlos Souza"}}, nil)

		results, err := service.Search(ctx, " 12345 ")
		require.NoError(t, err)
		require.Len(t, results, 1)
		repo.AssertExpectations(t)
	})

	t.Run("text query searches free text", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		repo.On("SearchFreeText", ctx, "Carlos", 50).
			Return([]model.Professional{{Registration: "12345", Name: "Carlos Souza"}}, nil)

		results, err := service.Search(ctx, "Carlos")
		require.NoError(t, err)
		require.Len(t, results, 1)
		repo.AssertExpectations(t)
	})

	t.Run("short queries return nothing without touching the repository", func(t *testing.T) {
		repo := new(MockProfessionalRepository)
		service := usecase.NewProfessionalImportService(repo, logger)

		results, err := service.Search(ctx, "a")
		require.NoError(t, err)
		assert.Empty(t, results)
		repo.AssertNotCalled(t, "SearchFreeText")
		repo.AssertNotCalled(t, "SearchByRegistration")
	})
}
