package platform

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Open(handler MessageHandler) error {
	args := m.Called(handler)
	return args.Error(0)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Reply(ctx context.Context, msg Message, text string) error {
	args := m.Called(ctx, msg, text)
	return args.Error(0)
}

func (m *MockClient) ReplyEmbed(ctx context.Context, msg Message, embed *Embed) error {
	args := m.Called(ctx, msg, embed)
	return args.Error(0)
}

func (m *MockClient) SelfID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) AvatarURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetUsername(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockClient) SetAvatar(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockClient) Guilds() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]string)
}

func (m *MockClient) SetNickname(ctx context.Context, guildID, nick string) error {
	args := m.Called(ctx, guildID, nick)
	return args.Error(0)
}

func (m *MockClient) SetListening(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

func (m *MockClient) Connected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockClient) Latency() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *MockClient) Uptime() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
