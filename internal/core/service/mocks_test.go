package service

import (
	"context"
	"imagetools/internal/core/domain"
)

type MockImageGenerator struct {
	response domain.GenerationResult
	err      error
	Request  domain.GenerationRequest
	Calls    int
}

func (m *MockImageGenerator) Generate(_ context.Context, request domain.GenerationRequest) (domain.GenerationResult, error) {
	m.Request = request
	m.Calls++
	return m.response, m.err
}

type MockImageDescriber struct {
	response domain.Recognition
	err      error
	Prompt   string
	Image    domain.Image
	Calls    int
}

func (m *MockImageDescriber) Describe(_ context.Context, image domain.Image, prompt string) (domain.Recognition, error) {
	m.Image = image
	m.Prompt = prompt
	m.Calls++
	return m.response, m.err
}

type MockBackgroundRemover struct {
	response []byte
	err      error
	Calls    int
}

func (m *MockBackgroundRemover) RemoveBackground(_ context.Context, _ domain.Image) ([]byte, error) {
	m.Calls++
	return m.response, m.err
}

type MockImageCompressor struct {
	response domain.CompressedImage
	err      error
	Quality  int
	Calls    int
}

func (m *MockImageCompressor) Compress(_ context.Context, _ domain.Image, quality int) (domain.CompressedImage, error) {
	m.Quality = quality
	m.Calls++
	return m.response, m.err
}
