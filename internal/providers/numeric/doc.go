// Package numeric exposes the numeric core as registry tools under the
// "numeric." prefix. Parameters arrive JSON-decoded; failures come back as
// results tagged with a types.Reason rather than as Go errors.
package numeric
