package contracts

import "archmap/project_context/models"

// IContextBuilder produces the bounded textual summary of a project that
// seeds the prompt pipeline.
type IContextBuilder interface {
	BuildContext(rootPath string, options models.Options) (*models.ProjectContext, error)
}
