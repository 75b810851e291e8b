package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/pager"
)

// DefaultPageSize bounds each list call against the API server.
const DefaultPageSize = 100

// UpstreamError wraps a failed call to the Kubernetes API.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("list %s: %v", ApplicationGVR.GroupResource(), e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Lister is the subset of dynamic.ResourceInterface the fetcher needs.
type Lister interface {
	List(ctx context.Context, opts metav1.ListOptions) (*unstructured.UnstructuredList, error)
}

// Fetcher retrieves every Application in the cluster.
type Fetcher struct {
	lister   Lister
	pageSize int64
}

// NewFetcher lists Applications across all namespaces through dyn.
func NewFetcher(dyn dynamic.Interface, pageSize int64) *Fetcher {
	return NewFetcherForLister(dyn.Resource(ApplicationGVR), pageSize)
}

// NewFetcherForLister is NewFetcher for an arbitrary Lister. A page size of
// zero issues a single unbounded list call.
func NewFetcherForLister(l Lister, pageSize int64) *Fetcher {
	return &Fetcher{lister: l, pageSize: pageSize}
}

// FetchAll follows continue tokens until the listing is exhausted and
// returns the items in the order the API server sent them.
func (f *Fetcher) FetchAll(ctx context.Context) ([]unstructured.Unstructured, error) {
	p := pager.New(pager.SimplePageFunc(func(opts metav1.ListOptions) (runtime.Object, error) {
		list, err := f.lister.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return list, nil
	}))
	p.PageSize = f.pageSize

	var items []unstructured.Unstructured
	err := p.EachListItem(ctx, metav1.ListOptions{}, func(obj runtime.Object) error {
		u, ok := obj.(*unstructured.Unstructured)
		if !ok {
			return fmt.Errorf("unexpected list item type %T", obj)
		}
		items = append(items, *u)
		return nil
	})
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	return items, nil
}
