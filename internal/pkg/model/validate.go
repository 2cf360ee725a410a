package model

import (
	"github.com/marmotedu/component-base/pkg/validation"
	"github.com/marmotedu/component-base/pkg/validation/field"
)

func (u *User) Validate() field.ErrorList {
	val := validation.NewValidator(u)
	allErrs := val.Validate()

	return allErrs
}

func (w *WAN) Validate() field.ErrorList {
	return validation.NewValidator(w).Validate()
}

func (p *Peer) Validate() field.ErrorList {
	return validation.NewValidator(p).Validate()
}

func (s *LocalSubnet) Validate() field.ErrorList {
	return validation.NewValidator(s).Validate()
}

func (s *PublishedService) Validate() field.ErrorList {
	return validation.NewValidator(s).Validate()
}

func (j *DeploymentJob) Validate() field.ErrorList {
	return validation.NewValidator(j).Validate()
}
