package cli

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runFunc func(cmd *cobra.Command, args []string) error

// logged оборачивает команду: поднимает приложение, логирует
// начало команды, время выполнения и результат, затем закрывает хранилище
func (e *env) logged(run runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := e.open(cmd); err != nil {
			return err
		}
		defer func() {
			if cerr := e.close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		name := cmd.CommandPath()
		e.log.WithField("args", args).Debugf("Incoming command: %s", name)

		start := time.Now()
		err = run(cmd, args)
		duration := time.Since(start)

		entry := e.log.WithFields(logrus.Fields{"command": name, "duration": duration})
		if err != nil {
			entry.WithError(err).Debug("Command failed")
		} else {
			entry.Debug("Command completed successfully")
		}

		return err
	}
}
