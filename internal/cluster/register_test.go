package cluster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	consul "github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAgent responde às rotas do agente Consul usadas pelo registro.
type fakeAgent struct {
	mu           sync.Mutex
	registered   *consul.AgentServiceRegistration
	deregistered string
}

func (f *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/status/leader":
		json.NewEncoder(w).Encode("10.0.0.1:8300")
	case r.Method == http.MethodPut && r.URL.Path == "/v1/agent/service/register":
		var reg consul.AgentServiceRegistration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.registered = &reg
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/v1/agent/service/deregister/"):
		f.deregistered = strings.TrimPrefix(r.URL.Path, "/v1/agent/service/deregister/")
	default:
		http.NotFound(w, r)
	}
}

func TestJoinAndLeave(t *testing.T) {
	agent := &fakeAgent{}
	srv := httptest.NewServer(agent)
	defer srv.Close()
	addr := strings.TrimPrefix(srv.URL, "http://")

	a, err := Join(" ,127.0.0.1:1,"+addr, Registration{Name: "letsdraw-coordinator", Port: 3000, Host: "node-1"})
	require.NoError(t, err)
	assert.Equal(t, "letsdraw-coordinator-node-1", a.ID())
	assert.Equal(t, addr, a.Node())
	assert.NoError(t, a.Check())

	agent.mu.Lock()
	require.NotNil(t, agent.registered)
	assert.Equal(t, "letsdraw-coordinator", agent.registered.Name)
	assert.Equal(t, 3000, agent.registered.Port)
	require.NotNil(t, agent.registered.Check)
	assert.Equal(t, "http://node-1:3000/health", agent.registered.Check.HTTP)
	agent.mu.Unlock()

	require.NoError(t, a.Leave())
	agent.mu.Lock()
	assert.Equal(t, a.ID(), agent.deregistered)
	agent.mu.Unlock()
}

func TestAgentCheckFailsWhenConsulGoesAway(t *testing.T) {
	srv := httptest.NewServer(&fakeAgent{})
	a, err := Join(strings.TrimPrefix(srv.URL, "http://"), Registration{Name: "svc", Port: 1, Host: "h"})
	require.NoError(t, err)

	srv.Close()

	assert.Error(t, a.Check())
}

func TestJoin_NoNodes(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Join(strings.TrimPrefix(srv.URL, "http://"), Registration{Name: "svc"})
	assert.Error(t, err)

	_, err = Join(" , ", Registration{Name: "svc"})
	assert.Error(t, err)
}

func TestParseNodes(t *testing.T) {
	assert.Equal(t, []string{"a:8500", "b:8500"}, parseNodes(" a:8500, ,b:8500,a:8500 "))
	assert.Empty(t, parseNodes(""))
}
