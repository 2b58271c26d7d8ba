package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"vesseldocs-backend/pkg/auth"
	"vesseldocs-backend/pkg/errors"
)

// accountsFile is the YAML shape of an operator-provided accounts file.
type accountsFile struct {
	Accounts []auth.Account `yaml:"accounts"`
}

// DefaultLocalAccounts are the built-in fixture credentials available in
// local mode. They are deliberately not valid in cloud or production.
func DefaultLocalAccounts() []auth.Account {
	return []auth.Account{
		{Principal: "admin_user", Secret: "local-admin", Role: auth.RoleAdmin, Modes: []string{string(ModeLocal)}},
		{Principal: "readonly_user", Secret: "local-readonly", Role: auth.RoleReadOnly, Modes: []string{string(ModeLocal)}},
	}
}

// LoadAccounts builds the credential whitelist: the built-in local fixture
// accounts plus, when configured, accounts parsed from the YAML file.
func LoadAccounts(cfg *Config) ([]auth.Account, error) {
	accounts := DefaultLocalAccounts()

	if cfg.AccountsFile == "" {
		return accounts, nil
	}

	data, err := os.ReadFile(cfg.AccountsFile)
	if err != nil {
		return nil, errors.NewConfigurationError("accounts file unreadable: " + cfg.AccountsFile).WithCause(err)
	}

	var parsed accountsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.NewConfigurationError("accounts file malformed: " + cfg.AccountsFile).WithCause(err)
	}

	for _, acct := range parsed.Accounts {
		if acct.Principal == "" || acct.Secret == "" {
			return nil, errors.NewConfigurationError("account entries need principal and secret")
		}
		if !acct.Role.Valid() {
			return nil, errors.NewConfigurationError("account " + acct.Principal + " has unknown role " + string(acct.Role))
		}
		accounts = append(accounts, acct)
	}

	return accounts, nil
}
