// Package discovery scans a project tree for files that carry a release
// version relfiles can rewrite: Kubernetes manifests with image references,
// MSBuild-style XML project files, Flutter pubspec.yaml files and container
// build files with a version LABEL. The init command turns the findings into
// a starting configuration.
package discovery
