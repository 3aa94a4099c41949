package objpatch

import "github.com/sirupsen/logrus"

type Options struct {
	convertFunc func(value interface{}) interface{}
	errorSink   func(PatchError)
	descriptors DescriptorProvider
	logger      logrus.FieldLogger
}

// The default options.
var DefaultOptions = Options{}

// WithConvertFunc creates a new option object with a given convert function.
//
// The convert function is applied by ApplyPatch to every value carried by an
// operation before it is written or compared. This can be used to support
// additional types by converting them into one of the supported types.
func (options Options) WithConvertFunc(convertFunc func(value interface{}) interface{}) Options {
	options.convertFunc = convertFunc
	return options
}

// WithErrorSink creates a new option object which reports failed operations
// to sink and carries on with the rest of the patch, instead of aborting on
// the first failure. Mutations made before a failure are not rolled back.
func (options Options) WithErrorSink(sink func(PatchError)) Options {
	options.errorSink = sink
	return options
}

// WithDescriptorProvider creates a new option object which describes record
// types with provider.
func (options Options) WithDescriptorProvider(provider DescriptorProvider) Options {
	options.descriptors = provider
	return options
}

func (options Options) WithLogger(logger logrus.FieldLogger) Options {
	options.logger = logger
	return options
}

func (options *Options) descriptorProvider() DescriptorProvider {
	if options.descriptors == nil {
		return defaultDescriptors
	}
	return options.descriptors
}

func (options *Options) log() logrus.FieldLogger {
	if options.logger == nil {
		return logrus.StandardLogger()
	}
	return options.logger
}

func (options *Options) convert(value interface{}) interface{} {
	if options.convertFunc == nil {
		return value
	}
	return options.convertFunc(value)
}
