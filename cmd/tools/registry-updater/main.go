// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"ranking-workers/internal/common/config"
	"ranking-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	default:
		help()
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

// runCheck compares the registry with the workers section of a config file.
func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	configPath := fs.String("config", "configs/config.yaml", "Path to service config")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		return err
	}

	var enabled []string
	for name, w := range cfg.Workers {
		if w.Enabled {
			enabled = append(enabled, name)
		}
	}
	sort.Strings(enabled)

	var problems int
	for _, tt := range reg.Unregistered(enabled) {
		fmt.Printf("worker %s is enabled but not registered\n", tt)
		problems++
	}
	for _, a := range reg.Activities {
		w, ok := cfg.Workers[a.TaskType]
		if !ok {
			fmt.Printf("activity %s has no worker config\n", a.ID)
			problems++
			continue
		}
		if a.Timeout == "" || w.Timeout == 0 {
			continue
		}
		if d, _ := time.ParseDuration(a.Timeout); d != config.GetDuration(w.Timeout) {
			fmt.Printf("activity %s timeout %s differs from worker timeout %s\n", a.ID, a.Timeout, config.GetDuration(w.Timeout))
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d mismatches between registry and config", problems)
	}
	fmt.Printf("Registry matches %d enabled workers.\n", len(enabled))
	return nil
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	id := fs.String("id", "", "Activity ID to update")
	field := fs.String("field", "", "Field to update (displayName, description, timeout, retries)")
	value := fs.String("value", "", "New value for the field")
	fs.Parse(args)

	if *id == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("id, field, and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", *id)
	}

	switch *field {
	case "displayName":
		activity.DisplayName = *value
	case "description":
		activity.Description = *value
	case "timeout":
		if _, err := time.ParseDuration(*value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		activity.Timeout = *value
	case "retries":
		retries, err := strconv.Atoi(*value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", *field)
	}

	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  validate  Validate the registry file
  check     Compare the registry with the workers in a config file
  update    Update an existing activity's field

Examples:
  registry-updater validate -path configs/activity-registry.json
  registry-updater check -config configs/config.yaml
  registry-updater update -id top-candidates -field timeout -value 20s`)
}
