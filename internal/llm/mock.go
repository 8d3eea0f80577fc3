package llm

import "context"

// MockClient implements Client with function fields for tests. A nil field
// falls back to an empty response.
type MockClient struct {
	GenerateFunc     func(ctx context.Context, req Request, tier ModelTier) (string, error)
	GenerateJSONFunc func(ctx context.Context, req Request, tier ModelTier) (string, error)
	GetModelFunc     func(tier ModelTier) string
	CloseFunc        func() error
}

// Generate calls GenerateFunc if set.
func (m *MockClient) Generate(ctx context.Context, req Request, tier ModelTier) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req, tier)
	}
	return "", nil
}

// GenerateJSON calls GenerateJSONFunc if set.
func (m *MockClient) GenerateJSON(ctx context.Context, req Request, tier ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, req, tier)
	}
	return "{}", nil
}

// GetModel calls GetModelFunc if set.
func (m *MockClient) GetModel(tier ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

// Close calls CloseFunc if set.
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
