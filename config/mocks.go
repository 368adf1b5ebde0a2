package config

import (
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/eximware/erp-data-api/log"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("DefaultLimit").Return(DefaultResultLimit)
	o.On("MaxLimit").Return(MaxResultLimit)
	o.On("ReferenceSamples").Return(true)
	o.On("Naming").Return(NewDefaultNaming())
	o.On("Logger").Return(log.NewZapLogger(zap.NewExample()))
	return o
}

func (o *ConfigMock) DefaultLimit() int {
	args := o.Called()
	return args.Get(0).(int)
}

func (o *ConfigMock) MaxLimit() int {
	args := o.Called()
	return args.Get(0).(int)
}

func (o *ConfigMock) ReferenceSamples() bool {
	args := o.Called()
	return args.Get(0).(bool)
}

func (o *ConfigMock) Naming() NamingConvention {
	args := o.Called()
	return args.Get(0).(NamingConvention)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
