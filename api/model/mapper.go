package model

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// MalformedItemError describes why an Application was left out of a listing.
// It never leaves the mapper; it only ends up in the logs.
type MalformedItemError struct {
	Name   string // empty when metadata.name itself is unusable
	Reason string
}

func (e *MalformedItemError) Error() string {
	if e.Name == "" {
		return "malformed application: " + e.Reason
	}
	return fmt.Sprintf("malformed application %s: %s", e.Name, e.Reason)
}

// Mapper turns raw Application objects into AppSummary records.
type Mapper struct {
	domain string
	log    logrus.FieldLogger
}

func NewMapper(domain string, log logrus.FieldLogger) *Mapper {
	return &Mapper{domain: domain, log: log}
}

// MapAll maps items in order and reports how many were dropped.
func (m *Mapper) MapAll(items []unstructured.Unstructured) ([]AppSummary, int) {
	apps := make([]AppSummary, 0, len(items))
	dropped := 0
	for i := range items {
		app, ok := m.MapOne(items[i].Object)
		if !ok {
			dropped++
			continue
		}
		apps = append(apps, app)
	}
	return apps, dropped
}

// MapOne summarizes a single Application object. It returns false, after
// logging the reason, when a required field is missing or has the wrong type.
func (m *Mapper) MapOne(obj map[string]interface{}) (AppSummary, bool) {
	app, err := m.summarize(obj)
	if err != nil {
		m.log.WithError(err).Warn("skipping application")
		return AppSummary{}, false
	}
	return app, true
}

func (m *Mapper) summarize(obj map[string]interface{}) (AppSummary, error) {
	for _, key := range []string{"metadata", "status"} {
		if _, ok := obj[key]; !ok {
			return AppSummary{}, &MalformedItemError{Reason: "missing " + key}
		}
	}

	name, err := requiredString(obj, "", "metadata", "name")
	if err != nil {
		return AppSummary{}, err
	}
	namespace, err := requiredString(obj, name, "metadata", "namespace")
	if err != nil {
		return AppSummary{}, err
	}
	health, err := requiredString(obj, name, "status", "health", "status")
	if err != nil {
		return AppSummary{}, err
	}
	finishedAt, err := requiredString(obj, name, "status", "operationState", "finishedAt")
	if err != nil {
		return AppSummary{}, err
	}

	app := AppSummary{
		Name:          name,
		Health:        health,
		LastUpdatedAt: finishedAt,
		Link:          fmt.Sprintf("argocd.%s/applications/%s/%s", m.domain, namespace, name),
	}

	log := m.log.WithField("app", name)
	if urls, ok := m.summaryList(log, obj, "externalURLs"); ok {
		app.ExternalURLs = make([]string, 0, len(urls))
		for _, u := range urls {
			s, ok := u.(string)
			if !ok {
				log.WithField("value", u).Warn("unexpected external URL type")
				continue
			}
			app.ExternalURLs = append(app.ExternalURLs, s)
		}
	}
	if images, ok := m.summaryList(log, obj, "images"); ok {
		app.Images = make([]ImageRef, 0, len(images))
		for _, img := range images {
			s, _ := img.(string)
			ref, ok := ParseImage(s)
			if !ok {
				log.WithField("image", img).Warn("unexpected image format")
				continue
			}
			app.Images = append(app.Images, ref)
		}
	}
	return app, nil
}

// summaryList looks up status.summary.<key>. A key that is present but not a
// list is logged and treated as absent.
func (m *Mapper) summaryList(log logrus.FieldLogger, obj map[string]interface{}, key string) ([]interface{}, bool) {
	val, found, err := unstructured.NestedFieldNoCopy(obj, "status", "summary", key)
	if err != nil || !found {
		return nil, false
	}
	list, ok := val.([]interface{})
	if !ok {
		log.WithField("key", key).Warnf("status.summary.%s is %T, expected a list", key, val)
		return nil, false
	}
	return list, true
}

func requiredString(obj map[string]interface{}, name string, fields ...string) (string, error) {
	s, found, err := unstructured.NestedString(obj, fields...)
	path := strings.Join(fields, ".")
	if err != nil {
		return "", &MalformedItemError{Name: name, Reason: fmt.Sprintf("invalid %s: %v", path, err)}
	}
	if !found {
		return "", &MalformedItemError{Name: name, Reason: "missing " + path}
	}
	return s, nil
}
