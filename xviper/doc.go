// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.  Options are
small functions applied in order to a Viper instance, so that command line tools can share the
same layering of files, environment, and flags.
*/
package xviper
