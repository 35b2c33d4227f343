package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"github.com/sirupsen/logrus"
)

// Registration descreve a instância anunciada no Consul.
type Registration struct {
	Name string
	Port int
	// Host usado no check HTTP. Vazio usa o hostname da máquina.
	Host string
	Tags []string
}

// ServiceID é único por instância: nome do serviço mais hostname.
func (r Registration) ServiceID() string {
	return fmt.Sprintf("%s-%s", r.Name, r.host())
}

func (r Registration) host() string {
	if r.Host != "" {
		return r.Host
	}
	if h := os.Getenv("HOSTNAME"); h != "" {
		return h
	}
	h, _ := os.Hostname()
	return h
}

// Register anuncia o serviço com um check HTTP em /health e devolve o id registrado.
func Register(client *consul.Client, reg Registration) (string, error) {
	id := reg.ServiceID()
	registration := &consul.AgentServiceRegistration{
		ID:   id,
		Name: reg.Name,
		Port: reg.Port,
		Tags: reg.Tags,
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", reg.host(), reg.Port),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return "", fmt.Errorf("register %s in consul: %w", id, err)
	}

	logrus.WithFields(logrus.Fields{"component": "cluster", "service": reg.Name, "id": id}).Info("service registered in consul")
	return id, nil
}

// Deregister remove o serviço no desligamento.
func Deregister(client *consul.Client, id string) error {
	if err := client.Agent().ServiceDeregister(id); err != nil {
		return fmt.Errorf("deregister %s from consul: %w", id, err)
	}
	logrus.WithFields(logrus.Fields{"component": "cluster", "id": id}).Info("service deregistered from consul")
	return nil
}
