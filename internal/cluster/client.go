package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/sirupsen/logrus"
)

// Agent é a presença desta instância do coordenador no Consul: o nó escolhido
// e o serviço anunciado nele.
type Agent struct {
	client *consul.Client
	node   string
	id     string
	log    *logrus.Entry
}

// Join escolhe o primeiro nó da lista (separada por vírgulas) que responde com um
// líder e anuncia reg nele.
func Join(addrs string, reg Registration) (*Agent, error) {
	nodes := parseNodes(addrs)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no consul address in %q", addrs)
	}

	client, node, err := dialFirst(nodes)
	if err != nil {
		return nil, err
	}
	id, err := Register(client, reg)
	if err != nil {
		return nil, err
	}

	return &Agent{
		client: client,
		node:   node,
		id:     id,
		log:    logrus.WithFields(logrus.Fields{"component": "cluster", "node": node, "id": id}),
	}, nil
}

// ID é o id do serviço registrado.
func (a *Agent) ID() string { return a.id }

// Node é o endereço do agente Consul em uso.
func (a *Agent) Node() string { return a.node }

// Check serve de verificação para o HealthAggregator.
func (a *Agent) Check() error {
	if _, err := a.client.Status().Leader(); err != nil {
		return fmt.Errorf("consul %s: %w", a.node, err)
	}
	return nil
}

// Leave retira o serviço do Consul.
func (a *Agent) Leave() error {
	if err := Deregister(a.client, a.id); err != nil {
		return err
	}
	a.log.Debug("left consul")
	return nil
}

// parseNodes limpa a lista de endereços, sem vazios nem repetidos.
func parseNodes(addrs string) []string {
	var nodes []string
	seen := make(map[string]bool)
	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		if node == "" || seen[node] {
			continue
		}
		seen[node] = true
		nodes = append(nodes, node)
	}
	return nodes
}

func dialFirst(nodes []string) (*consul.Client, string, error) {
	log := logrus.WithField("component", "cluster")

	for _, node := range nodes {
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.WithField("node", node).WithError(err).Warn("consul client failed")
			continue
		}
		if _, err := client.Status().Leader(); err != nil {
			log.WithField("node", node).WithError(err).Warn("consul node did not answer")
			continue
		}

		log.WithField("node", node).Info("connected to consul")
		return client, node, nil
	}
	return nil, "", fmt.Errorf("no consul node available in %v", nodes)
}
