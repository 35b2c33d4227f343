package session

import (
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"letsdraw/internal/network"
)

type MockCoordinator struct {
	mock.Mock
}

func (m *MockCoordinator) Join(connID, name, code string, customWords []string) {
	m.Called(connID, name, code, customWords)
}

func (m *MockCoordinator) Leave(connID string) {
	m.Called(connID)
}

func (m *MockCoordinator) SelectWord(connID, code, word string) {
	m.Called(connID, code, word)
}

func (m *MockCoordinator) Guess(connID, code, text string) {
	m.Called(connID, code, text)
}

func (m *MockCoordinator) Pause(connID, code string) {
	m.Called(connID, code)
}

func (m *MockCoordinator) Resume(connID, code string) {
	m.Called(connID, code)
}

func (m *MockCoordinator) Skip(connID, code string) {
	m.Called(connID, code)
}

func (m *MockCoordinator) Reset(connID, code string) {
	m.Called(connID, code)
}

func (m *MockCoordinator) Draw(connID, code string, stroke json.RawMessage) {
	m.Called(connID, code, stroke)
}

func (m *MockCoordinator) ClearCanvas(connID, code string) {
	m.Called(connID, code)
}

func (m *MockCoordinator) Chat(connID, code, msg string) {
	m.Called(connID, code, msg)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendTo(connID string, msg network.Message) {
	m.Called(connID, msg)
}
